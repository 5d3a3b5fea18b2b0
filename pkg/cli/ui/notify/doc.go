// Package notify provides styled console output for the portfolio CLI.
//
// Messages are rendered with a type-specific symbol and color so operators can
// scan long provisioning output for errors, warnings, and successes at a glance.
package notify
