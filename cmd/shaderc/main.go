// Command shaderc converts shader source files to WGSL.
//
// Usage:
//
//	shaderc convert shader.frag              # GLSL by extension
//	shaderc convert --from hlsl effect.txt   # explicit dialect
//	shaderc bundle effects.toml              # compile a module bundle
//
// Converted output is written next to the input with a .wgsl extension.
// Conversions with error diagnostics print them and leave no output file.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// version is overridden at build time via -ldflags.
	version = "0.1.0-dev"

	verbose bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "shaderc",
	})

	rootCmd = &cobra.Command{
		Use:   "shaderc",
		Short: "Shader cross-compiler targeting WGSL",
		Long: `shaderc converts GLSL, HLSL, ISF and node-graph shader sources
to WGSL, with diagnostics instead of hard failures wherever the input
allows a degraded but valid conversion.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.AddCommand(newConvertCommand(), newBundleCommand(), newVersionCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
