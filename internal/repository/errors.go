// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios.  For
// example, ErrNotFound indicates that a filtered lookup matched no
// document, while ErrDuplicate signals that an insert would violate
// a uniqueness expectation (e.g. creating a user whose email already
// has a record).
package repository

import "errors"

// ErrNotFound is returned when a findOne matches no document.  Handlers
// translate this into an empty 200 body, mirroring the behaviour of the
// underlying store returning null.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert is refused because a document
// with the same identity already exists.  Handlers translate this into
// a message body rather than an inserted id.
var ErrDuplicate = errors.New("already exists")
