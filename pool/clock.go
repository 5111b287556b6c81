// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"sync/atomic"
	"time"
)

// Clock supplies the pool's notion of current time, in unix seconds,
// monotonically non-decreasing.
type Clock interface {
	Now() uint64
}

type systemClock struct{}

func (systemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// SystemClock returns a Clock backed by wall-clock time.
func SystemClock() Clock {
	return systemClock{}
}

// ManualClock is a Clock advanced by hand, for tests and simulations.
type ManualClock struct {
	now atomic.Uint64
}

// NewManualClock creates a manual clock set to now.
func NewManualClock(now uint64) *ManualClock {
	c := &ManualClock{}
	c.now.Store(now)
	return c
}

func (c *ManualClock) Now() uint64 {
	return c.now.Load()
}

// Set moves the clock to now. Moving backwards is ignored.
func (c *ManualClock) Set(now uint64) {
	for {
		cur := c.now.Load()
		if now <= cur {
			return
		}
		if c.now.CompareAndSwap(cur, now) {
			return
		}
	}
}

// Advance moves the clock forward by d seconds.
func (c *ManualClock) Advance(d uint64) {
	c.now.Add(d)
}
