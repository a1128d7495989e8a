package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	studio "github.com/compiling-org/WGSL-Shader-Studio-sub002"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/bundle"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/registry"
)

// newBundleCommand creates the `shaderc bundle` command.
func newBundleCommand() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "bundle <file>",
		Short: "Compile a module bundle",
		Long: `Load a module bundle (.json, .toml or .yaml), install its modules
into a registry and compile every entry point with its dependencies
linked in. Each entry point writes <identity>.wgsl next to the bundle
file unless --check is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compileBundle(args[0], check)
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "compile only, write no output files")
	return cmd
}

func compileBundle(path string, check bool) error {
	b, err := bundle.Load(path)
	if err != nil {
		return err
	}
	logger.Info("loaded bundle", "name", b.Name, "modules", len(b.Modules), "entry_points", len(b.EntryPoints))

	reg := registry.New(registry.DefaultOptions())
	b.Install(reg)

	entries := b.EntryPoints
	if len(entries) == 0 {
		logger.Warn("bundle declares no entry points, nothing to compile")
		return nil
	}

	failed := 0
	for _, id := range entries {
		art, ds, err := studio.CompileModule(reg, id, studio.DefaultOptions())
		if err != nil {
			logger.Error("compile failed", "module", id, "err", err)
			failed++
			continue
		}
		if ds.Len() > 0 {
			fmt.Fprint(os.Stderr, renderDiagnostics(ds))
		}
		if ds.HasErrors() {
			failed++
			continue
		}
		if check {
			logger.Info("compiled", "module", id)
			continue
		}
		out := filepath.Join(filepath.Dir(path), string(id)+".wgsl")
		if err := os.WriteFile(out, []byte(art.Source), 0o644); err != nil {
			return err
		}
		logger.Info("compiled", "module", id, "output", out)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d entry points failed", failed, len(entries))
	}
	return nil
}
