package calendar

import "errors"

var (
	// ErrNotAuthenticated is returned when the calendar backend has no valid
	// credential. Callers degrade gracefully instead of failing the call.
	ErrNotAuthenticated = errors.New("calendar backend not authenticated")

	// ErrInvalidBooking is returned when a booking request is missing
	// required fields.
	ErrInvalidBooking = errors.New("invalid booking request")
)
