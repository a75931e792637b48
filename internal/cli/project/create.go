package project

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
	projectservice "github.com/thenoetrevino/tablero/internal/services/project"
)

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project.

Examples:
  tablero project create --name="Website" --due=2024-06-30
  tablero project create --name="Website" --member=Ana --member=Luis --json
  PROJECT_ID=$(tablero project create --name="Website" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Project name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().String("status", "", "Status: active, completed, on_hold, cancelled (default active)")
	cmd.Flags().String("due", "", "Due date YYYY-MM-DD")
	cmd.Flags().StringSlice("member", nil, "Team member name (repeatable)")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		flags := cmd.Flags()
		var req projectservice.CreateProjectRequest
		req.Name, _ = flags.GetString("name")
		req.Description, _ = flags.GetString("description")
		req.TeamMembers, _ = flags.GetStringSlice("member")

		if raw, _ := flags.GetString("status"); raw != "" {
			status, err := models.ParseProjectStatus(raw)
			if err != nil {
				return err
			}
			req.Status = status
		}
		if raw, _ := flags.GetString("due"); raw != "" {
			due, err := cli.ParseDate(raw)
			if err != nil {
				return err
			}
			req.DueDate = due
		}

		project, err := c.App.ProjectService.CreateProject(ctx, req)
		if err != nil {
			return err
		}

		return f.Result("project", project, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Project '%s' created successfully (ID: %d)\n", project.Name, project.ID)
			return err
		})
	})
}
