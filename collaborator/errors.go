package collaborator

import "errors"

// ErrServiceNotFound is returned when an invoker has no registration for the
// requested service name.
var ErrServiceNotFound = errors.New("collaborator service not found")
