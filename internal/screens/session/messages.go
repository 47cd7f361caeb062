package session

import (
	sess "github.com/abhisek/quizbox/internal/session"
)

// sessionEndMsg is sent to trigger the session end flow.
type sessionEndMsg struct{}

// sessionFinishedMsg carries the result of persisting the session.
type sessionFinishedMsg struct {
	Summary *sess.SessionSummary
	Err     error
}
