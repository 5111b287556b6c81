// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"
)

// defaultMaxJournalLag is how far the event journal may trail behind the
// last emitted pool event before the service is reported unhealthy.
const defaultMaxJournalLag = 10 * time.Second

type Status struct {
	Healthy            bool       `json:"healthy"`
	Paused             bool       `json:"paused"`
	JoinWindowOpen     bool       `json:"joinWindowOpen"`
	LastEventTimestamp *time.Time `json:"lastEventTimestamp"`
	JournalLag         int64      `json:"journalLagCount"`
}

// Health tracks service liveness: journal backlog and pool gate state.
type Health struct {
	lock           sync.RWMutex
	lastEvent      time.Time
	pendingJournal int64
	paused         bool
	joinWindowOpen bool
}

// EventEmitted records a pool event entering the journal queue.
func (h *Health) EventEmitted() {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastEvent = time.Now()
	h.pendingJournal++
}

// EventJournaled records a pool event durably written to the journal.
func (h *Health) EventJournaled() {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.pendingJournal > 0 {
		h.pendingJournal--
	}
}

// SetPoolState mirrors the pool's gate state into the health report.
func (h *Health) SetPoolState(paused, joinWindowOpen bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.paused = paused
	h.joinWindowOpen = joinWindowOpen
}

// Status reports current health. The journal is allowed to trail the feed
// by maxJournalLag before the service counts as unhealthy.
func (h *Health) Status(maxJournalLag time.Duration) (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	var lastEvent *time.Time
	if !h.lastEvent.IsZero() {
		t := h.lastEvent
		lastEvent = &t
	}

	healthy := h.pendingJournal == 0 ||
		time.Since(h.lastEvent) < maxJournalLag

	return &Status{
		Healthy:            healthy,
		Paused:             h.paused,
		JoinWindowOpen:     h.joinWindowOpen,
		LastEventTimestamp: lastEvent,
		JournalLag:         h.pendingJournal,
	}, nil
}

// DefaultMaxJournalLag exposes the default lag tolerance for API callers.
func DefaultMaxJournalLag() time.Duration {
	return defaultMaxJournalLag
}
