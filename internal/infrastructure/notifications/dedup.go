package notifications

import (
	"sync"
	"time"
)

// EventDeduper remembers recently seen webhook event ids so provider retries
// do not trigger duplicate notifications. Entries expire after ttl and the
// table is capped at maxEntries, evicting the oldest when full.
type EventDeduper struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	seen       map[string]time.Time
	now        func() time.Time
}

func NewEventDeduper(ttl time.Duration, maxEntries int) *EventDeduper {
	return &EventDeduper{
		ttl:        ttl,
		maxEntries: maxEntries,
		seen:       make(map[string]time.Time),
		now:        time.Now,
	}
}

// Seen records id and reports whether it was already present and unexpired.
func (d *EventDeduper) Seen(id string) bool {
	if id == "" {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if at, ok := d.seen[id]; ok && now.Sub(at) < d.ttl {
		return true
	}

	d.sweep(now)
	d.seen[id] = now
	return false
}

// sweep drops expired entries, then the oldest ones if still over capacity.
// Caller holds the lock.
func (d *EventDeduper) sweep(now time.Time) {
	for id, at := range d.seen {
		if now.Sub(at) >= d.ttl {
			delete(d.seen, id)
		}
	}
	for len(d.seen) >= d.maxEntries && d.maxEntries > 0 {
		oldestID := ""
		var oldestAt time.Time
		for id, at := range d.seen {
			if oldestID == "" || at.Before(oldestAt) {
				oldestID, oldestAt = id, at
			}
		}
		delete(d.seen, oldestID)
	}
}
