package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"transcription-api/cmd/transcription-api/cmd/serve"
	"transcription-api/cmd/transcription-api/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "transcription-api",
	Short: "HTTP API for transcription job records",
	Long: `HTTP API for transcription job records.
- CRUD operations over a relational store
- Publishes a change event to the configured topic on every create
- The transcription text itself is a placeholder; speech-to-text is external`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
