package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	studio "github.com/compiling-org/WGSL-Shader-Studio-sub002"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"shader.frag", "shader.wgsl"},
		{"dir/effect.hlsl", "dir/effect.wgsl"},
		{"noext", "noext.wgsl"},
		{"dir.v2/noext", "dir.v2/noext.wgsl"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.in); got != tt.want {
			t.Errorf("outputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConvertFile_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "pulse.frag")
	src := "uniform float time;\nvoid main() { gl_FragColor = vec4(sin(time), 0.0, 0.0, 1.0); }\n"
	if err := os.WriteFile(in, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := convertFile(in, "", studio.DefaultOptions()); err != nil {
		t.Fatalf("convertFile: %v", err)
	}

	out, err := os.ReadFile(filepath.Join(dir, "pulse.wgsl"))
	if err != nil {
		t.Fatalf("missing output: %v", err)
	}
	if !strings.Contains(string(out), "@fragment") {
		t.Errorf("output is not WGSL:\n%s", out)
	}
}

func TestConvertFile_ErrorsLeaveNoOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.frag")
	if err := os.WriteFile(in, []byte("void main() { {\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := convertFile(in, "", studio.DefaultOptions()); err == nil {
		t.Fatal("expected failure for unbalanced source")
	}
	if _, err := os.Stat(filepath.Join(dir, "broken.wgsl")); !os.IsNotExist(err) {
		t.Error("failed conversion must not write an output file")
	}
}

func TestConvertFile_UnknownDialectFlag(t *testing.T) {
	if err := convertFile("x.frag", "cuda", studio.DefaultOptions()); err == nil {
		t.Fatal("expected unknown dialect error")
	}
}
