// Package errorhandler runs cobra commands and turns their failures into a
// single user-facing error.
package errorhandler
