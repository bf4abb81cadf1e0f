package service

import (
	"sync"

	"github.com/chromastyle/closet/internal/domain"
)

// SessionHolder caches the authenticated user's snapshot in a
// synchronously-readable slot, decoupled from the store so the UI can render
// a last-known user before the store has finished opening. It is refreshed
// on every successful login and profile update and cleared on logout.
type SessionHolder struct {
	mu   sync.RWMutex
	user *domain.User
}

// NewSessionHolder creates an empty SessionHolder.
func NewSessionHolder() *SessionHolder {
	return &SessionHolder{}
}

// Current returns a snapshot of the session user, or nil when logged out.
func (h *SessionHolder) Current() *domain.User {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.user == nil {
		return nil
	}
	u := *h.user
	return &u
}

// Set stores a snapshot of the given user as the current session.
func (h *SessionHolder) Set(user *domain.User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if user == nil {
		h.user = nil
		return
	}
	u := *user
	h.user = &u
}

// Clear empties the slot.
func (h *SessionHolder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.user = nil
}

// refresh updates the slot only when it currently holds the same user.
func (h *SessionHolder) refresh(user *domain.User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.user == nil || user == nil || h.user.ID != user.ID {
		return
	}
	u := *user
	h.user = &u
}
