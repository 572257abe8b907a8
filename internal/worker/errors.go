package worker

import "errors"

// errAlreadyStarted is emitted when a start request arrives while a
// deployment is already tracked.
var errAlreadyStarted = errors.New("worker already started")

// errNotStarted is emitted when a control request arrives before start.
var errNotStarted = errors.New("worker not started")
