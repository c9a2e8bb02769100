package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced raffle or user does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflictingState is returned when a transition is attempted on a raffle
	// that is not in the expected state (e.g. a duplicate job delivery)
	ErrConflictingState = errors.New("conflicting raffle state")

	// ErrRemoteCall is returned when the contract gateway or the store fails
	ErrRemoteCall = errors.New("remote call failed")

	// ErrValidation is returned for malformed input
	ErrValidation = errors.New("validation failed")

	// ErrRevealNotEligible is returned when a reveal is attempted before the mandatory delay elapsed
	ErrRevealNotEligible = errors.New("reveal not eligible yet")

	// ErrInvalidRaffleType is returned when a raffle type is unknown
	ErrInvalidRaffleType = errors.New("invalid raffle type")
)
