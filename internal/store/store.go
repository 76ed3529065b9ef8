package store

import (
	"errors"

	"github.com/loscheesy/ordering/internal/session"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore holds the live customer sessions of this process.
type SessionStore interface {
	// Create starts a new session and returns its id
	Create() (string, *session.Controller)

	// Get returns the session and marks it as recently used
	Get(id string) (*session.Controller, error)

	// Delete ends a session
	Delete(id string)

	// Close shuts down the store and any background processes
	Close() error
}
