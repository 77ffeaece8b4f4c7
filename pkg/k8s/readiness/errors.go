package readiness

import "errors"

// ErrTimeoutExceeded is returned when a timeout is exceeded.
var ErrTimeoutExceeded = errors.New("timeout exceeded")

// ErrCRDNotEstablished is returned when a CRD reports NamesAccepted=False.
var ErrCRDNotEstablished = errors.New("custom resource definition names not accepted")
