package command

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCommand(t *testing.T, parent *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, cmd := range parent.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	t.Fatalf("command %q not registered under %q", name, parent.Name())
	return nil
}

func TestRootCommandMetadata(t *testing.T) {
	assert.Equal(t, "sopcalc", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)

	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestTopLevelCommandsRegistered(t *testing.T) {
	for _, name := range []string{
		"new", "list", "view", "estimate", "export",
		"task", "factor", "config", "edit", "mcp",
	} {
		findCommand(t, rootCmd, name)
	}
}

func TestTaskSubcommands(t *testing.T) {
	task := findCommand(t, rootCmd, "task")
	for _, name := range []string{"add", "update", "remove", "list", "include", "exclude", "move", "method"} {
		findCommand(t, task, name)
	}

	method := findCommand(t, task, "method")
	for _, name := range []string{"add", "remove", "select", "rate"} {
		findCommand(t, method, name)
	}
}

func TestFactorSubcommands(t *testing.T) {
	factor := findCommand(t, rootCmd, "factor")
	for _, name := range []string{"add", "update", "remove", "list", "apply", "set", "range"} {
		findCommand(t, factor, name)
	}
}

func TestNewCommandFlags(t *testing.T) {
	cmd := findCommand(t, rootCmd, "new")
	for _, flag := range []string{"output", "description", "sample", "force"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "missing flag %q", flag)
	}
}

func TestEstimateCommandFlags(t *testing.T) {
	cmd := findCommand(t, rootCmd, "estimate")
	assert.NotNil(t, cmd.Flags().Lookup("area"))
	assert.NotNil(t, cmd.Flags().Lookup("labor-rate"))
}
