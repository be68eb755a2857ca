package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const resetPhrase = "reset"

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all toolkit data",
	Long:  "Erase step progress, the content library, the profile and the generated copy. Asks for confirmation unless --yes is given.",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if !resetYes {
		fmt.Fprintf(out, "This erases all toolkit data and cannot be undone.\nType %q to continue: ", resetPhrase)
		line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if strings.TrimSpace(line) != resetPhrase {
			fmt.Fprintln(out, "Reset cancelled.")
			return nil
		}
	}

	return withApp(cmd, func(a *app) error {
		if err := a.tk.ResetAll(true); err != nil {
			return err
		}
		fmt.Fprintln(out, "All toolkit data erased.")
		return nil
	})
}
