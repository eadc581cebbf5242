package device

import "errors"

// Domain errors for the device package.
//
// The binding engine itself reports plain booleans; these errors are used
// by the Registry and Repository:
//
//	if errors.Is(err, device.ErrDeviceNotFound) {
//	    // handle not found case
//	}
var (
	// ErrDeviceNotFound is returned when a device ID does not exist.
	ErrDeviceNotFound = errors.New("device: not found")

	// ErrDeviceExists is returned when creating a device with an ID that already exists.
	ErrDeviceExists = errors.New("device: already exists")

	// ErrInvalidDevice is returned when device validation fails.
	ErrInvalidDevice = errors.New("device: invalid")

	// ErrInvalidIOType is returned when an I/O type value is not recognised.
	ErrInvalidIOType = errors.New("device: invalid io type")
)
