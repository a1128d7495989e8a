package registry

import (
	"container/list"
	"errors"
	"sync"
	"time"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/shader"
)

// ErrModuleNotFound is returned by lookups of absent or expired
// identities. Always recoverable: the caller may re-issue Load.
var ErrModuleNotFound = errors.New("registry: module not found")

// Options configures a Registry.
type Options struct {
	// Capacity bounds the number of cached modules. Insertion beyond
	// capacity evicts least-recently-used entries.
	Capacity int

	// TTL is how long an entry stays valid after its last access.
	// Zero disables expiry.
	TTL time.Duration

	// Strict makes dependency collection fail on unresolved imports
	// instead of skipping them.
	Strict bool

	// Clock supplies the current time. Nil means time.Now. Tests inject
	// a fake clock to drive expiry.
	Clock func() time.Time

	// Metrics receives cache counters when non-nil.
	Metrics *Metrics
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Capacity: 128,
		TTL:      5 * time.Minute,
	}
}

// Stats is a point-in-time snapshot of cache effectiveness.
type Stats struct {
	Size      int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

type entry struct {
	module      *shader.Module
	lastAccess  time.Time
	accessCount uint64
	elem        *list.Element
}

// Registry is the shared module store. Mutation is serialized behind one
// lock per instance; module values handed out are immutable snapshots.
type Registry struct {
	mu      sync.RWMutex
	opts    Options
	entries map[shader.ModuleIdentity]*entry
	lru     *list.List
	aliases map[string]shader.ModuleIdentity

	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates a registry. Zero-valued option fields fall back to
// DefaultOptions.
func New(opts Options) *Registry {
	def := DefaultOptions()
	if opts.Capacity <= 0 {
		opts.Capacity = def.Capacity
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Registry{
		opts:    opts,
		entries: make(map[shader.ModuleIdentity]*entry),
		lru:     list.New(),
		aliases: make(map[string]shader.ModuleIdentity),
	}
}

// Load parses source into a module and stores it. An unexpired entry with
// identical source is returned unchanged; changed source derives a new
// module version with the old artifact dropped.
func (r *Registry) Load(identity shader.ModuleIdentity, name, source string, dialect shader.Dialect) *shader.Module {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.opts.Clock()
	if e, ok := r.entries[identity]; ok && !r.expired(e, now) {
		if e.module.Fingerprint == shader.Fingerprint(source) {
			r.touch(e, now)
			return e.module
		}
		m := e.module.WithSource(source)
		m.Dialect = resolveDialect(dialect, m.Dialect)
		e.module = m
		r.touch(e, now)
		return m
	}

	m := shader.NewModule(identity, name, source, dialect)
	r.insert(identity, m, now)
	return m
}

// Get returns the cached module for identity. Absent and expired entries
// both report ErrModuleNotFound; expired ones are evicted on the way out.
func (r *Registry) Get(identity shader.ModuleIdentity) (*shader.Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.opts.Clock()
	e, ok := r.entries[identity]
	if !ok {
		r.miss()
		return nil, ErrModuleNotFound
	}
	if r.expired(e, now) {
		r.evict(identity, e)
		r.miss()
		return nil, ErrModuleNotFound
	}
	r.touch(e, now)
	r.hits++
	if m := r.opts.Metrics; m != nil {
		m.Hits.Inc()
	}
	return e.module, nil
}

// Attach stores a compiled artifact against the cached module, deriving a
// new module value so existing references stay unchanged.
func (r *Registry) Attach(identity shader.ModuleIdentity, a *shader.Artifact) (*shader.Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.opts.Clock()
	e, ok := r.entries[identity]
	if !ok || r.expired(e, now) {
		return nil, ErrModuleNotFound
	}
	e.module = e.module.WithArtifact(a)
	r.touch(e, now)
	return e.module, nil
}

// Invalidate drops the entry for identity if present.
func (r *Registry) Invalidate(identity shader.ModuleIdentity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[identity]; ok {
		r.evict(identity, e)
	}
}

// Clear drops every entry. Counters are kept; they describe the lifetime
// of the registry, not its current contents.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[shader.ModuleIdentity]*entry)
	r.lru.Init()
	r.setGauge()
}

// AddAlias maps an import path string to a module identity for the
// resolver. Later registrations win.
func (r *Registry) AddAlias(path string, identity shader.ModuleIdentity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[path] = identity
}

// Stats reports the current cache snapshot.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Stats{
		Size:      len(r.entries),
		Capacity:  r.opts.Capacity,
		Hits:      r.hits,
		Misses:    r.misses,
		Evictions: r.evictions,
	}
}

func (r *Registry) expired(e *entry, now time.Time) bool {
	return r.opts.TTL > 0 && now.Sub(e.lastAccess) >= r.opts.TTL
}

func (r *Registry) touch(e *entry, now time.Time) {
	e.lastAccess = now
	e.accessCount++
	r.lru.MoveToFront(e.elem)
}

func (r *Registry) miss() {
	r.misses++
	if m := r.opts.Metrics; m != nil {
		m.Misses.Inc()
	}
}

func (r *Registry) insert(identity shader.ModuleIdentity, m *shader.Module, now time.Time) {
	if e, ok := r.entries[identity]; ok {
		e.module = m
		r.touch(e, now)
		return
	}
	e := &entry{module: m, lastAccess: now, accessCount: 1}
	e.elem = r.lru.PushFront(identity)
	r.entries[identity] = e
	r.evictOverCapacity(now)
	r.setGauge()
}

// evictOverCapacity makes room after an insert: expired entries go first,
// then least-recently-used ones from the back of the list.
func (r *Registry) evictOverCapacity(now time.Time) {
	if len(r.entries) <= r.opts.Capacity {
		return
	}
	for id, e := range r.entries {
		if len(r.entries) <= r.opts.Capacity {
			return
		}
		if r.expired(e, now) {
			r.evict(id, e)
		}
	}
	for len(r.entries) > r.opts.Capacity {
		back := r.lru.Back()
		if back == nil {
			return
		}
		id := back.Value.(shader.ModuleIdentity)
		r.evict(id, r.entries[id])
	}
}

func (r *Registry) evict(identity shader.ModuleIdentity, e *entry) {
	r.lru.Remove(e.elem)
	delete(r.entries, identity)
	r.evictions++
	if m := r.opts.Metrics; m != nil {
		m.Evictions.Inc()
	}
	r.setGauge()
}

func (r *Registry) setGauge() {
	if m := r.opts.Metrics; m != nil {
		m.Entries.Set(float64(len(r.entries)))
	}
}

func resolveDialect(requested, current shader.Dialect) shader.Dialect {
	if requested != shader.DialectUnknown {
		return requested
	}
	return current
}
