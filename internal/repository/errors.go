// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a listing or request owned by
// someone else, while ErrInvalidState signals that a request has
// already been resolved and cannot be transitioned again.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidState is returned when a barter or purchase request is
// no longer pending. Accepted and rejected are terminal, so a second
// respond call on the same request receives this error. Handlers
// should translate it into an HTTP 409 response.
var ErrInvalidState = errors.New("request already resolved")

// ErrNoInventory is returned when a farmer with zero listings of their
// own tries to open a barter. The check runs before any request row is
// written.
var ErrNoInventory = errors.New("no listings to offer")
