// Package session keeps per-visitor feed and assistant state in memory.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/kevo-dev/Portfolio2/internal/assistant"
	"github.com/kevo-dev/Portfolio2/internal/feed"
	"github.com/kevo-dev/Portfolio2/internal/profile"
	"github.com/robfig/cron/v3"
)

const SweepSchedule = "@every 5m"

type Visitor struct {
	ID        string
	Feed      *feed.Session
	Assistant *assistant.Session

	lastSeen time.Time
}

type Registry struct {
	source   feed.Source
	comments feed.CommentStore
	conv     assistant.Conversant
	profile  *profile.Profile
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	visitors map[string]*Visitor
}

func NewRegistry(source feed.Source, comments feed.CommentStore, conv assistant.Conversant, p *profile.Profile, ttl time.Duration) *Registry {
	return &Registry{
		source:   source,
		comments: comments,
		conv:     conv,
		profile:  p,
		ttl:      ttl,
		now:      time.Now,
		visitors: make(map[string]*Visitor),
	}
}

// Visitor returns the state for id, creating it on first sight.
func (r *Registry) Visitor(id string) *Visitor {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visitors[id]
	if !ok {
		v = &Visitor{
			ID:        id,
			Feed:      feed.NewSession(id, r.source, r.comments),
			Assistant: assistant.NewSession(r.conv, r.profile),
		}
		r.visitors[id] = v
	}
	v.lastSeen = r.now()
	return v
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}

// Sweep drops visitors idle for longer than the TTL and returns how many
// were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, v := range r.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(r.visitors, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) Schedule(c *cron.Cron) (cron.EntryID, error) {
	return c.AddFunc(SweepSchedule, func() {
		if n := r.Sweep(); n > 0 {
			slog.Info("swept idle visitors", "removed", n, "remaining", r.Len())
		}
	})
}
