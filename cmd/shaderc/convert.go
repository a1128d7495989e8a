package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	studio "github.com/compiling-org/WGSL-Shader-Studio-sub002"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/shader"
)

// newConvertCommand creates the `shaderc convert` command.
func newConvertCommand() *cobra.Command {
	var (
		from   string
		width  int
		height int
	)
	cmd := &cobra.Command{
		Use:   "convert <files...>",
		Short: "Convert shader files to WGSL",
		Long: `Convert one or more shader files to WGSL. The source dialect is
detected from each file's extension (.glsl/.frag/.vert GLSL, .hlsl/.fx
HLSL, .isf/.fs ISF, .graph node graph) unless --from overrides it.

Output is written to <input stem>.wgsl. Files producing error
diagnostics print them and write nothing.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := studio.DefaultOptions()
			if width > 0 {
				opts.Width = width
			}
			if height > 0 {
				opts.Height = height
			}
			var g errgroup.Group
			g.SetLimit(4)
			for _, path := range args {
				path := path
				g.Go(func() error {
					return convertFile(path, from, opts)
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "source dialect: glsl, hlsl, isf or graph (default: by extension)")
	cmd.Flags().IntVar(&width, "width", 0, "render width for graph resolution defaults")
	cmd.Flags().IntVar(&height, "height", 0, "render height for graph resolution defaults")
	return cmd
}

func convertFile(path, from string, opts studio.CompileOptions) error {
	dialect := shader.DetectDialect(path)
	if from != "" {
		dialect = shader.ParseDialect(from)
		if dialect == shader.DialectUnknown {
			return fmt.Errorf("unknown dialect %q", from)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	name := string(shader.IdentityFromPath(path))
	art, ds, err := studio.ConvertWithOptions(dialect, string(data), name, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if ds.Len() > 0 {
		fmt.Fprint(os.Stderr, renderDiagnostics(ds))
	}
	if ds.HasErrors() {
		return fmt.Errorf("%s: conversion failed", path)
	}

	out := outputPath(path)
	if err := os.WriteFile(out, []byte(art.Source), 0o644); err != nil {
		return err
	}
	logger.Info("converted", "input", path, "output", out, "dialect", dialect.String())
	return nil
}

// outputPath swaps the input extension for .wgsl.
func outputPath(path string) string {
	if i := strings.LastIndex(path, "."); i > strings.LastIndexAny(path, "/\\") {
		path = path[:i]
	}
	return path + ".wgsl"
}
