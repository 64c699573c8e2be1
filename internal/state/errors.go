package state

import "errors"

// ErrSnapshotNotFound is returned when no snapshot exists for a thing.
var ErrSnapshotNotFound = errors.New("state: snapshot not found")
