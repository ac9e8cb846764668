// Package session keeps per-user sticky option preferences: the style,
// aspect ratio and resolution a user last set explicitly become the defaults
// for their later flagless prompts.
package session

import (
	"sync"
	"time"
)

// Prefs are the stored option values. Empty fields mean "no preference".
type Prefs struct {
	Style       string
	AspectRatio string
	Resolution  string
}

type entry struct {
	prefs        Prefs
	lastActivity time.Time
}

type Store struct {
	mu    sync.Mutex
	users map[int64]*entry
}

func NewStore() *Store {
	return &Store{
		users: make(map[int64]*entry),
	}
}

// Get returns the stored preferences for a user, the zero value when none.
func (s *Store) Get(userID int64) Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.users[userID]; ok {
		e.lastActivity = time.Now()
		return e.prefs
	}
	return Prefs{}
}

// Update overwrites only the non-empty fields of upd.
func (s *Store) Update(userID int64, upd Prefs) {
	if upd == (Prefs{}) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.users[userID]
	if !ok {
		e = &entry{}
		s.users[userID] = e
	}
	e.lastActivity = time.Now()

	if upd.Style != "" {
		e.prefs.Style = upd.Style
	}
	if upd.AspectRatio != "" {
		e.prefs.AspectRatio = upd.AspectRatio
	}
	if upd.Resolution != "" {
		e.prefs.Resolution = upd.Resolution
	}
}

// Clear removes a user's stored preferences.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, userID)
}
