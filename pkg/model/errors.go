package model

import "fmt"

// InvalidSessionError reports a session record that cannot take part in overlap checks
type InvalidSessionError struct {
	Index   int
	Session Session
	Reason  string
}

func (err *InvalidSessionError) Error() string {
	return fmt.Sprintf("invalid session at index %d (subject %q, event %q): %s", err.Index, err.Session.Subject, err.Session.EventId, err.Reason)
}
