package strip

import "errors"

var (
	// ErrStartMarkerNotFound is returned when the start marker does not occur in the text.
	ErrStartMarkerNotFound = errors.New("start marker not found")

	// ErrEndMarkerNotFound is returned when the end marker does not occur in the text.
	ErrEndMarkerNotFound = errors.New("end marker not found")

	// ErrMarkersMisordered is returned when the end marker does not come
	// strictly after the start of the region to remove.
	ErrMarkersMisordered = errors.New("unexpected positions: end marker is not after start marker")
)
