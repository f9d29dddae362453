package entity

import "errors"

// Sentinel errors shared by repositories and services. Handlers map these
// to HTTP status codes with errors.Is.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrMovieNotFound    = errors.New("movie not found")
	ErrShowtimeNotFound = errors.New("showtime not found")
	ErrBookingNotFound  = errors.New("booking not found")

	ErrDuplicateUsername = errors.New("username already registered")
	ErrDuplicateEmail    = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown username and wrong password
	// so login failures never reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrForbidden = errors.New("not enough permissions")

	ErrInsufficientSeats = errors.New("not enough seats available")

	// ErrValidation carries per-field validation messages; services wrap
	// detail around it with fmt.Errorf("%w: <fields>", ErrValidation).
	ErrValidation = errors.New("validation failed")
)
