package model

import (
	"fmt"
	"net/http"
)

// FetchError wraps a failed search-page fetch so callers can tell a blocked
// request from an ordinary non-success status.
type FetchError struct {
	URL        string
	StatusCode int // zero for transport errors and timeouts
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("fetch %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Blocked reports whether the status is one job sites use to turn scrapers
// away. LinkedIn answers 999 instead of 403.
func (e *FetchError) Blocked() bool {
	switch e.StatusCode {
	case http.StatusForbidden, http.StatusTooManyRequests, 999:
		return true
	}
	return false
}
