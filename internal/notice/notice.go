// Package notice is a small in-process hub for short-lived, user-visible
// messages: success/error feedback on writes and the generator's reminders.
// Posting is fire-and-forget; expired notices disappear on the next read.
package notice

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DefaultTTL matches the five-second toasts the dashboard shows.
const DefaultTTL = 5 * time.Second

type Notice struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Hub struct {
	mu     sync.Mutex
	byUser map[string][]Notice
	now    func() time.Time
}

func NewHub() *Hub {
	return &Hub{byUser: make(map[string][]Notice), now: time.Now}
}

// Post adds a notice for the user. A non-positive ttl falls back to DefaultTTL.
func (h *Hub) Post(userID string, severity Severity, message string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := h.now()
	n := Notice{
		ID:        uuid.NewString(),
		Severity:  severity,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.byUser[userID] = append(h.prune(h.byUser[userID], now), n)
}

// For returns the user's live notices, oldest first.
func (h *Hub) For(userID string) []Notice {
	h.mu.Lock()
	defer h.mu.Unlock()
	live := h.prune(h.byUser[userID], h.now())
	if len(live) == 0 {
		delete(h.byUser, userID)
		return nil
	}
	h.byUser[userID] = live
	out := make([]Notice, len(live))
	copy(out, live)
	return out
}

func (h *Hub) prune(notices []Notice, now time.Time) []Notice {
	live := notices[:0]
	for _, n := range notices {
		if n.ExpiresAt.After(now) {
			live = append(live, n)
		}
	}
	return live
}
