// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusEmpty(t *testing.T) {
	var h Health

	status, err := h.Status(defaultMaxJournalLag)
	assert.Nil(t, err)
	assert.True(t, status.Healthy)
	assert.Nil(t, status.LastEventTimestamp)
}

func TestStatusJournalLag(t *testing.T) {
	var h Health

	h.EventEmitted()
	status, _ := h.Status(defaultMaxJournalLag)
	assert.True(t, status.Healthy) // within the lag tolerance
	assert.Equal(t, int64(1), status.JournalLag)

	status, _ = h.Status(0)
	assert.False(t, status.Healthy)

	h.EventJournaled()
	status, _ = h.Status(0)
	assert.True(t, status.Healthy)
	assert.Equal(t, int64(0), status.JournalLag)
}

func TestStatusPoolState(t *testing.T) {
	var h Health

	h.SetPoolState(true, false)
	status, _ := h.Status(time.Second)
	assert.True(t, status.Paused)
	assert.False(t, status.JoinWindowOpen)
}
