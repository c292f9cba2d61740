package notify

import "fmt"

// TransportError is returned when a list or create call against the
// comment API fails. It is recovered locally: the caller logs it and
// keeps the CI job's exit status at zero.
type TransportError struct {
	// Op is the API operation that failed ("list" or "create")
	Op string

	// Err is the underlying error
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("comment API %s failed: %v\n"+
		"  → The skip decision is still honored; the notification was not delivered\n"+
		"  → Check the github-token permissions if this persists", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
