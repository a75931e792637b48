package project

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// UpdateCmd returns the project update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Update project fields",
		Long:  "Update the given fields of a project. Fields whose flag is not passed keep their value.",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("status", "", "New status")
	cmd.Flags().String("due", "", "New due date YYYY-MM-DD")
	cmd.Flags().Int("progress", 0, "New progress percentage 0-100")
	cmd.Flags().StringSlice("member", nil, "Replace the team (repeatable)")

	cli.AddOutputFlags(cmd)
	return cmd
}

func patchFromFlags(cmd *cobra.Command) (models.ProjectPatch, error) {
	flags := cmd.Flags()
	var patch models.ProjectPatch

	if flags.Changed("name") {
		v, _ := flags.GetString("name")
		patch.Name = &v
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		patch.Description = &v
	}
	if flags.Changed("status") {
		raw, _ := flags.GetString("status")
		v, err := models.ParseProjectStatus(raw)
		if err != nil {
			return patch, err
		}
		patch.Status = &v
	}
	if flags.Changed("due") {
		raw, _ := flags.GetString("due")
		v, err := cli.ParseDate(raw)
		if err != nil {
			return patch, err
		}
		patch.DueDate = &v
	}
	if flags.Changed("progress") {
		v, _ := flags.GetInt("progress")
		patch.Progress = &v
	}
	if flags.Changed("member") {
		v, _ := flags.GetStringSlice("member")
		patch.TeamMembers = &v
	}
	return patch, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		patch, err := patchFromFlags(cmd)
		if err != nil {
			return err
		}

		project, err := c.App.ProjectService.UpdateProject(ctx, id, patch)
		if err != nil {
			return err
		}

		return f.Result("project", project, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Project %d updated\n", project.ID)
			return err
		})
	})
}
