package fsutil

import "errors"

// ErrEmptyOutputPath is returned when no output path is given.
var ErrEmptyOutputPath = errors.New("output path cannot be empty")

// ErrFileExists is returned when the output exists and overwriting was not requested.
var ErrFileExists = errors.New("file already exists")

const (
	dirPermUserGroupRX = 0o750
	filePermUserRW     = 0o600
)
