package trivia

import "errors"

// Sentinel errors matched with errors.Is by the HTTP layer when mapping
// failures to response statuses.
var (
	// ErrNotFound covers a missing question, a missing category, or a page
	// number beyond the available data.
	ErrNotFound = errors.New("resource not found")

	// ErrUnprocessable covers well-formed requests that violate domain
	// constraints, such as an empty question or answer on create.
	ErrUnprocessable = errors.New("unprocessable input")
)
