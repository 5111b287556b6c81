// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemesh/linearpool/health"
)

func TestHealthEndpoint(t *testing.T) {
	h := &health.Health{}
	h.SetPoolState(false, true)

	router := mux.NewRouter()
	NewAPI(h).Mount(router, "/health")
	ts := httptest.NewServer(router)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var status health.Status
	require.NoError(t, json.NewDecoder(res.Body).Decode(&status))
	assert.True(t, status.Healthy)
	assert.False(t, status.Paused)
	assert.True(t, status.JoinWindowOpen)
}

func TestHealthEndpointUnhealthy(t *testing.T) {
	h := &health.Health{}
	// an event entered the queue and was never journaled
	h.EventEmitted()

	router := mux.NewRouter()
	NewAPI(h).Mount(router, "/health")
	ts := httptest.NewServer(router)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/health?maxJournalLag=0s")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)

	var status health.Status
	require.NoError(t, json.NewDecoder(res.Body).Decode(&status))
	assert.False(t, status.Healthy)
	assert.Equal(t, int64(1), status.JournalLag)
}
