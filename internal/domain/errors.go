package domain

import "errors"

var (
	ErrRecordNotFound         = errors.New("record not found")
	ErrConflict               = errors.New("conditional write precondition no longer holds")
	ErrInvalidSelection       = errors.New("seat selection is empty or malformed")
	ErrSeatsNoLongerAvailable = errors.New("one or more selected seats are no longer available")
	ErrStoreUnavailable       = errors.New("booking store is temporarily unavailable")
	ErrMissingIdentity        = errors.New("an authenticated user is required")
)
