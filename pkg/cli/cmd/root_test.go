package cmd_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/cmd"
)

func TestRootCmdShowsHelpWithoutArguments(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("v1.0.0", "abc123", "2026-01-01")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{})

	err := cmd.Execute(rootCmd)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "portfolio")
	assert.Contains(t, out.String(), "cluster")
	assert.Contains(t, out.String(), "creds")
}

func TestRootCmdReportsVersion(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("v1.0.0", "abc123", "2026-01-01")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--version"})

	err := cmd.Execute(rootCmd)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "v1.0.0")
	assert.Contains(t, out.String(), "abc123")
}

func TestRootCmdRegistersAllCommandGroups(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("dev", "none", "unknown")

	names := make([]string, 0)
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Contains(t, names, "cluster")
	assert.Contains(t, names, "stack")
	assert.Contains(t, names, "creds")
	assert.Contains(t, names, "dashboard")
}
