// Package cmd implements the excelaipro CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var configFile string

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "excelaipro",
	Short: "ExcelAI Pro spreadsheet chat backend",
	Long:  "ExcelAI Pro backend serving the spreadsheet chat application: streaming chat, file upload, and speech synthesis.",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Optional YAML config overlay (env vars take precedence)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(modelsCmd)
}
