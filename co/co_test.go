// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoes(t *testing.T) {
	var g Goes
	var n atomic.Int32

	for i := 0; i < 10; i++ {
		g.Go(func() { n.Add(1) })
	}
	g.Wait()
	assert.Equal(t, int32(10), n.Load())

	select {
	case <-g.Done():
	case <-time.After(time.Second):
		t.Fatal("Done channel never closed")
	}
}

func TestSignalBroadcast(t *testing.T) {
	var sig Signal

	w1 := sig.NewWaiter()
	w2 := sig.NewWaiter()
	sig.Broadcast()

	for _, w := range []Waiter{w1, w2} {
		select {
		case <-w.C():
		case <-time.After(time.Second):
			t.Fatal("waiter never woke up")
		}
	}
}

func TestSignalSignal(t *testing.T) {
	var sig Signal
	w := sig.NewWaiter()
	sig.Signal()

	select {
	case v := <-w.C():
		assert.True(t, v)
	case <-time.After(time.Second):
		t.Fatal("waiter never woke up")
	}
}
