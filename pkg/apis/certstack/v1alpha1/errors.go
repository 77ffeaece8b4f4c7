package v1alpha1

import "errors"

// ErrInvalidDNSSolver is returned when an invalid DNS solver is specified.
var ErrInvalidDNSSolver = errors.New("invalid DNS solver")

// ErrInvalidAPIVersion is returned when the configuration declares a foreign apiVersion.
var ErrInvalidAPIVersion = errors.New("invalid apiVersion")

// ErrInvalidKind is returned when the configuration declares a foreign kind.
var ErrInvalidKind = errors.New("invalid kind")

// ErrNegativeTimeout is returned when the connection timeout is negative.
var ErrNegativeTimeout = errors.New("timeout must not be negative")

// ErrMissingCredential is returned when a credential required by the selected
// features is empty.
var ErrMissingCredential = errors.New("missing credential")
