package profile

import "errors"

var (
	// ErrProfileNotFound is returned when a profile ID does not exist.
	ErrProfileNotFound = errors.New("profile: not found")

	// ErrProfileExists is returned when adding a profile whose ID is taken.
	ErrProfileExists = errors.New("profile: already exists")

	// ErrInvalidProfile is returned when profile validation fails.
	ErrInvalidProfile = errors.New("profile: invalid")

	// ErrProfileCycle is returned when a parent chain loops.
	ErrProfileCycle = errors.New("profile: parent cycle")
)
