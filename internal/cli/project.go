package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/apiclient"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `List projects, create new ones, and change their lifecycle status.`,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all projects",
	RunE:    runProjectList,
}

var projectNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new project",
	Long: `Create a new project.

Examples:
  cockpit project new "Acme" --description "A tool" --repo acme/acme
  cockpit project new "My App" --url https://myapp.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectNew,
}

var projectStatusCmd = &cobra.Command{
	Use:   "status [project-id] [status]",
	Short: "Change a project's status",
	Long: `Change a project's lifecycle status. Moving a project into
prep_launch queues launch-checklist generation.

Valid statuses: design, prep_launch, launched, paused, retired`,
	Args: cobra.ExactArgs(2),
	RunE: runProjectStatus,
}

var (
	projectDescription string
	projectURL         string
	projectRepo        string
)

func init() {
	projectNewCmd.Flags().StringVarP(&projectDescription, "description", "d", "", "Project description")
	projectNewCmd.Flags().StringVarP(&projectURL, "url", "u", "", "Project website URL")
	projectNewCmd.Flags().StringVarP(&projectRepo, "repo", "r", "", "GitHub repository (owner/repo)")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectStatusCmd)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	client, err := apiclient.NewClient()
	if err != nil {
		return err
	}

	projects, err := client.ListProjects()
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-36s  %-20s  %s\n", "ID", "Name", "Status")
	fmt.Println(strings.Repeat("─", 72))
	for _, p := range projects {
		fmt.Printf("  %-36s  %-20s  %s\n", p.ID, p.Name, p.Status)
	}
	fmt.Println()
	return nil
}

func runProjectNew(cmd *cobra.Command, args []string) error {
	client, err := apiclient.NewClient()
	if err != nil {
		return err
	}

	project, err := client.CreateProject(args[0], projectDescription, projectURL, projectRepo)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Printf("✓ Created project: %s (id: %s)\n", project.Name, project.ID)
	return nil
}

func runProjectStatus(cmd *cobra.Command, args []string) error {
	client, err := apiclient.NewClient()
	if err != nil {
		return err
	}

	project, err := client.SetProjectStatus(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	fmt.Printf("✓ %s is now %s\n", project.Name, project.Status)
	if project.Status == "prep_launch" {
		fmt.Println("  Launch checklist generation queued. Run 'cockpit checklist' to see it.")
	}
	return nil
}
