package main

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show progress through the framework steps",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app) error {
		a.out.PrintDashboard(a.tk.Profile(), a.tk.Metrics(), a.tk.Steps())
		return nil
	})
}
