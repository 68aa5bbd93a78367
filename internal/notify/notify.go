// Package notify carries user-facing success and error messages from the
// services to whatever surface displays them.
package notify

import (
	"sync"
	"time"
)

// Level classifies a notification for display purposes
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a single human-readable message
type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Sink receives notifications emitted by the services
type Sink interface {
	Push(level Level, message string)
}

// Feed is a bounded in-memory Sink that keeps the most recent notifications
type Feed struct {
	mu      sync.Mutex
	max     int
	entries []Notification
}

// NewFeed creates a feed retaining at most max notifications
func NewFeed(max int) *Feed {
	return &Feed{max: max}
}

// Push appends a notification, evicting the oldest once the feed is full
func (f *Feed) Push(level Level, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append(f.entries, Notification{
		Level:   level,
		Message: message,
		At:      time.Now().UTC(),
	})
	if len(f.entries) > f.max {
		f.entries = f.entries[len(f.entries)-f.max:]
	}
}

// Recent returns the retained notifications, oldest first
func (f *Feed) Recent() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Notification, len(f.entries))
	copy(out, f.entries)
	return out
}
