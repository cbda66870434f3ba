package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/apiclient"
)

var checklistCmd = &cobra.Command{
	Use:   "checklist [project-id]",
	Short: "Show a project's launch checklist",
	Args:  cobra.ExactArgs(1),
	RunE:  runChecklist,
}

func runChecklist(cmd *cobra.Command, args []string) error {
	client, err := apiclient.NewClient()
	if err != nil {
		return err
	}

	checklist, err := client.GetChecklist(args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch checklist: %w", err)
	}

	if checklist.Total == 0 {
		fmt.Println("No checklist items yet. If the project is in prep_launch, run 'cockpit generate' to retry.")
		return nil
	}

	fmt.Printf("\nLaunch checklist (%d/%d complete)\n\n", checklist.Completed, checklist.Total)
	for _, item := range checklist.Items {
		mark := " "
		if item.IsComplete {
			mark = "x"
		}
		fmt.Printf("  [%s] %d. %s\n", mark, item.SortOrder+1, item.Title)
		if item.AIHelpHint != "" {
			fmt.Printf("         %s\n", item.AIHelpHint)
		}
	}
	fmt.Println()
	return nil
}
