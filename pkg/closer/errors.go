package closer

import "errors"

var (
	errNoRepository  = errors.New("no repository configured")
	errNilDetails    = errors.New("no details returned")
	errNilCloseReply = errors.New("close returned no result")
	errDeclined      = errors.New("close declined")
)

// Exported errors for external use.
var (
	// ErrNoRepository is reported when the trigger context names no owner/repo.
	ErrNoRepository = errNoRepository
	// ErrDeclined is reported when the confirmation hook refuses a close.
	ErrDeclined = errDeclined
)
