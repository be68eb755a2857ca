package main

import (
	"github.com/spf13/cobra"
)

var funnelCmd = &cobra.Command{
	Use:   "funnel",
	Short: "Show content mapped onto each funnel stage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(a *app) error {
			a.out.PrintFunnel(a.tk.Funnel())
			return nil
		})
	},
}

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Show how many pieces each stage is missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(a *app) error {
			a.out.PrintGaps(a.tk.Gaps())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(funnelCmd, gapsCmd)
}
