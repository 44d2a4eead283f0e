package store

import "errors"

// ErrNotFound is returned when a task, session, or setting does not exist.
var ErrNotFound = errors.New("store: not found")

// ErrInvalid is returned for arguments rejected before any write happens.
var ErrInvalid = errors.New("store: invalid argument")
