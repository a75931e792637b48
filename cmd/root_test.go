package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

func TestRootCommand_RegistersGroups(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"task", "project", "user", "comment", "notification", "view", "import", "demo", "serve"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommand_RunsSubcommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	a := app.New(testutil.SetupTestRepo(t))
	root := NewRootCmd()
	root.SetContext(cli.WithApp(context.Background(), a))

	out, err := testutil.ExecuteCommand(t, root, "project", "create", "--name", "Web", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "1", strings.TrimSpace(out))
}

func TestRootCommand_UnknownID(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	a := app.New(testutil.SetupTestRepo(t))
	root := NewRootCmd()
	root.SetContext(cli.WithApp(context.Background(), a))

	_, err := testutil.ExecuteCommand(t, root, "task", "show", "42")
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}
