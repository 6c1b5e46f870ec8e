package utils

import "time"

// SessionData is the middleware-facing view of a session, decoupled from the
// auth package's storage model.
type SessionData struct {
	UserID    string
	ExpiresAt time.Time
}
