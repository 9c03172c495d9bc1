// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// matching on error text.
package repository

import "errors"

// ErrEmailExists is returned by UserRepo.Create when the normalized email
// collides with an existing account. Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")
