// Package fsutil holds small filesystem helpers: home-relative path expansion
// and guarded file writes.
package fsutil
