// Package cli provides the certstack command tree and its terminal helpers.
//
//   - cli/cmd: cobra commands (install, render, annotations, verify)
//   - cli/ui/errorhandler: command execution and exit codes
package cli
