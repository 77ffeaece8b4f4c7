// Package utils provides small helpers shared across certstack.
//
//   - envvar: ${VAR} placeholder expansion for configuration values
//   - notify: formatted message display with symbols, colors and timing
//   - timer: execution time tracking for multi-stage commands
package utils
