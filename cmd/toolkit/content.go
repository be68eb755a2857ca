package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/content-toolkit/internal/types"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Manage the content library",
}

var (
	contentTitle      string
	contentType       string
	contentStage      string
	contentUnassigned bool
)

var contentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a content piece to the library",
	Long:  "Add a content piece to the library. New pieces start unassigned. Suggested types: " + strings.Join(types.ContentTypes, ", ") + ".",
	Args:  cobra.NoArgs,
	RunE:  runContentAdd,
}

var contentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List content pieces",
	Args:  cobra.NoArgs,
	RunE:  runContentList,
}

var contentRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a content piece",
	Args:  cobra.ExactArgs(1),
	RunE:  runContentRemove,
}

var contentAssignCmd = &cobra.Command{
	Use:   "assign <id> <stage>",
	Short: "Assign a content piece to a funnel stage",
	Long:  "Assign a content piece to one of the funnel stages: " + stageList() + ".",
	Args:  cobra.ExactArgs(2),
	RunE:  runContentAssign,
}

var contentUnassignCmd = &cobra.Command{
	Use:   "unassign <id>",
	Short: "Return a content piece to the unassigned pool",
	Args:  cobra.ExactArgs(1),
	RunE:  runContentUnassign,
}

func init() {
	contentAddCmd.Flags().StringVar(&contentTitle, "title", "", "Title of the piece (required)")
	contentAddCmd.Flags().StringVar(&contentType, "type", "", "Content type, e.g. \"Blog Post\" (required)")
	if err := contentAddCmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("failed to mark title flag as required: %v", err))
	}
	if err := contentAddCmd.MarkFlagRequired("type"); err != nil {
		panic(fmt.Sprintf("failed to mark type flag as required: %v", err))
	}

	contentListCmd.Flags().StringVar(&contentStage, "stage", "", "Only list pieces in this stage")
	contentListCmd.Flags().BoolVar(&contentUnassigned, "unassigned", false, "Only list unassigned pieces")
	contentListCmd.MarkFlagsMutuallyExclusive("stage", "unassigned")

	contentCmd.AddCommand(contentAddCmd, contentListCmd, contentRemoveCmd, contentAssignCmd, contentUnassignCmd)
	rootCmd.AddCommand(contentCmd)
}

func stageList() string {
	keys := types.StageKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func runContentAdd(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app) error {
		item, err := a.tk.AddContent(contentTitle, contentType)
		if err := a.unsaved(err); err != nil {
			return err
		}
		a.out.PrintItem(item)
		return nil
	})
}

func runContentList(cmd *cobra.Command, _ []string) error {
	var stage types.StageKey
	if contentStage != "" {
		var err error
		if stage, err = types.ParseStage(contentStage); err != nil {
			return fmt.Errorf("%w (valid stages: %s)", err, stageList())
		}
	}

	return withApp(cmd, func(a *app) error {
		switch {
		case contentUnassigned:
			a.out.PrintLibrary("Unassigned content", a.tk.UnassignedContent())
		case stage.IsAssigned():
			s, _ := types.LookupStage(stage)
			a.out.PrintLibrary("Stage: "+s.Title, a.tk.ContentForStage(stage))
		default:
			a.out.PrintLibrary("Content library", a.tk.AllContent())
		}
		return nil
	})
}

func runContentRemove(cmd *cobra.Command, args []string) error {
	id := types.ContentID(args[0])
	return withApp(cmd, func(a *app) error {
		if err := a.unsaved(a.tk.RemoveContent(id)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", id)
		return nil
	})
}

func runContentAssign(cmd *cobra.Command, args []string) error {
	id := types.ContentID(args[0])
	stage := types.StageKey(args[1])
	return withApp(cmd, func(a *app) error {
		if err := a.unsaved(a.tk.AssignContent(id, stage)); err != nil {
			return err
		}
		return printContent(a, id)
	})
}

func runContentUnassign(cmd *cobra.Command, args []string) error {
	id := types.ContentID(args[0])
	return withApp(cmd, func(a *app) error {
		if err := a.unsaved(a.tk.UnassignContent(id)); err != nil {
			return err
		}
		return printContent(a, id)
	})
}

func printContent(a *app, id types.ContentID) error {
	item, err := a.tk.Content(id)
	if err != nil {
		return err
	}
	a.out.PrintItem(item)
	return nil
}
