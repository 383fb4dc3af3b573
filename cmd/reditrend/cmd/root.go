package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"reditrend/cmd/reditrend/cmd/export"
	"reditrend/cmd/reditrend/cmd/pipeline"
	"reditrend/cmd/reditrend/cmd/serve"
	"reditrend/cmd/reditrend/cmd/upload"
	"reditrend/cmd/reditrend/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reditrend",
	Short: "Turn trending Reddit posts into narrated YouTube videos",
	Long: `Turn trending Reddit posts into narrated YouTube videos.
- Run the pipeline services with "serve"
- Trigger an end-to-end run with "pipeline"
- Publish a finished render with "upload"
- Export analytics history with "export"`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(pipeline.Cmd)
	rootCmd.AddCommand(upload.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
