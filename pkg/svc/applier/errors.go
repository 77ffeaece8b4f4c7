package applier

import "errors"

// ErrUnsupportedKind is returned for a node kind the applier cannot handle.
var ErrUnsupportedKind = errors.New("unsupported node kind")

// ErrUnexpectedPayload is returned when a node's object does not match its kind.
var ErrUnexpectedPayload = errors.New("unexpected node payload")
