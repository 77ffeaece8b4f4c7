// Package notify writes styled, single-line status messages for CLI users.
//
// Message types are error (✗), warning (⚠), activity (►), success (✔), info (ℹ)
// and titles, which lead with an emoji. [StageSeparator] inserts a blank line
// before each title so consecutive stages stay visually apart.
// [ProgressGroup] runs concurrent tasks and reports per-task status.
package notify
