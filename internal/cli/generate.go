package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/apiclient"
)

var generateCmd = &cobra.Command{
	Use:   "generate [project-id]",
	Short: "Regenerate a project's launch checklist",
	Long: `Run the launch-checklist generation pipeline for a project. Any
previously generated checklist is replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	client, err := apiclient.NewClient()
	if err != nil {
		return err
	}

	fmt.Println("Generating launch checklist...")
	count, err := client.Generate(args[0])
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	fmt.Printf("✓ Generated %d checklist items\n", count)
	return nil
}
