package marketplace

import "errors"

var (
	// ErrMissingID is returned before any request when an id argument is empty.
	ErrMissingID = errors.New("marketplace: missing id")

	// ErrInvalidRating is returned for ratings outside 1..5.
	ErrInvalidRating = errors.New("marketplace: rating must be between 1 and 5")
)
