package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the user profile",
}

var (
	profileName    string
	profileCompany string
)

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the user profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(a *app) error {
			p := a.tk.Profile()
			fmt.Fprintf(cmd.OutOrStdout(), "Name:    %s\nCompany: %s\n", p.Name, p.Company)
			return nil
		})
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the user profile",
	Long:  "Update the user profile. Only the flags given are changed.",
	Args:  cobra.NoArgs,
	RunE:  runProfileSet,
}

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Show or replace the generated copy",
}

var copyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the generated copy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(a *app) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.tk.GeneratedCopy())
			return nil
		})
	},
}

var copySetCmd = &cobra.Command{
	Use:   "set <text>",
	Short: "Replace the generated copy",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			if err := a.unsaved(a.tk.SetGeneratedCopy(strings.Join(args, " "))); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Copy saved.")
			return nil
		})
	},
}

func init() {
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Your name")
	profileSetCmd.Flags().StringVar(&profileCompany, "company", "", "Your company")
	profileSetCmd.MarkFlagsOneRequired("name", "company")

	profileCmd.AddCommand(profileShowCmd, profileSetCmd)
	copyCmd.AddCommand(copyShowCmd, copySetCmd)
	rootCmd.AddCommand(profileCmd, copyCmd)
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app) error {
		p := a.tk.Profile()
		if cmd.Flags().Changed("name") {
			p.Name = profileName
		}
		if cmd.Flags().Changed("company") {
			p.Company = profileCompany
		}
		if err := a.unsaved(a.tk.SetProfile(p)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Profile saved.")
		return nil
	})
}
