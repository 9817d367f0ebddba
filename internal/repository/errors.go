// Package repository defines error values shared by the data access
// layer.  These sentinels let handlers distinguish failure scenarios
// without inspecting driver-specific errors.
package repository

import "errors"

// ErrBookingNotFound is returned when an operation targets a booking id
// that does not exist in the store.  Handlers should translate this
// into an HTTP 404 response.
var ErrBookingNotFound = errors.New("booking not found")
