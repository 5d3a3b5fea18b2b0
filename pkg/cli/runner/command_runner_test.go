package runner_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	runner "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/runner"
)

func TestRunCapturesAndDisplaysOutput(t *testing.T) {
	t.Parallel()

	var display bytes.Buffer

	cmdRunner := runner.NewCobraCommandRunner(&display, &display)

	cmd := &cobra.Command{
		Use: "echo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println("hello")

			return nil
		},
	}

	result, err := cmdRunner.Run(context.Background(), cmd, []string{})

	require.NoError(t, err)
	assert.Contains(t, result.Stdout, "hello")
	assert.Contains(t, display.String(), "hello")
}

func TestRunReturnsOutputCollectedBeforeFailure(t *testing.T) {
	t.Parallel()

	cmdRunner := runner.NewCobraCommandRunner(&bytes.Buffer{}, &bytes.Buffer{})

	cmd := &cobra.Command{
		Use: "fail",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println("partial")

			return errors.New("boom")
		},
	}

	result, err := cmdRunner.Run(context.Background(), cmd, []string{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "command execution failed")
	assert.Contains(t, result.Stdout, "partial")
}

func TestRunPassesArguments(t *testing.T) {
	t.Parallel()

	cmdRunner := runner.NewCobraCommandRunner(nil, nil)

	var got string

	cmd := &cobra.Command{
		Use:  "args",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			got = args[0]

			return nil
		},
	}

	_, err := cmdRunner.Run(context.Background(), cmd, []string{"value"})

	require.NoError(t, err)
	assert.Equal(t, "value", got)
}
