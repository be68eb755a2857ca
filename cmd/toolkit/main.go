// Package main provides the toolkit CLI: progress tracking, content mapping
// and gap analysis for the customer-journey content framework.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagConfigPath string
	flagDataDir    string
	flagBackend    string
	flagNamespace  string
	flagLogLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "toolkit",
	Short:         "Content framework progress and funnel mapping",
	Long:          "Track completion of the nine framework steps, keep a library of content pieces, map them onto the five funnel stages and see where content is missing.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfigPath, "config", "", "Path to a JSON or YAML config file")
	pf.StringVar(&flagDataDir, "data-dir", "", "Directory holding toolkit state (default: user config dir)")
	pf.StringVar(&flagBackend, "backend", "", "Storage backend: file, sqlite or memory")
	pf.StringVar(&flagNamespace, "namespace", "", "Storage key prefix")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
