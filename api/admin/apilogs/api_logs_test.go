// Copyright (c) 2025 The LinearPool developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package apilogs

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleAPILogs(t *testing.T) {
	var enabled atomic.Bool
	enabled.Store(true)

	router := mux.NewRouter()
	New(&enabled).Mount(router, "/admin/apilogs")
	ts := httptest.NewServer(router)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/admin/apilogs")
	require.NoError(t, err)
	var status LogStatus
	require.NoError(t, json.NewDecoder(res.Body).Decode(&status))
	res.Body.Close()
	assert.True(t, status.Enabled)

	body, _ := json.Marshal(LogStatus{Enabled: false})
	res, err = http.Post(ts.URL+"/admin/apilogs", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(res.Body).Decode(&status))
	res.Body.Close()
	assert.False(t, status.Enabled)
	assert.False(t, enabled.Load())
}
