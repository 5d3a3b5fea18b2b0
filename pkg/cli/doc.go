// Package cli provides the command layer of the portfolio CLI.
//
// Subpackages:
//
//   - cli/cmd: the Cobra command tree (cluster, stack, creds, dashboard)
//   - cli/runner: command runner utilities for executing wrapped SDK commands
//   - cli/ui/notify: styled console output
package cli
