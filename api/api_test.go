// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemesh/linearpool/eventdb"
	"github.com/stakemesh/linearpool/kv"
	"github.com/stakemesh/linearpool/ledger"
	"github.com/stakemesh/linearpool/pool"
	"github.com/stakemesh/linearpool/stake"
)

func newTestAPI(t *testing.T, opts Options) *httptest.Server {
	store, err := kv.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	p, err := pool.New(pool.Options{
		Owner:   stake.MustParseAddress("0x0000000000000000000000000000000000000001"),
		Custody: stake.MustParseAddress("0x0000000000000000000000000000000000000002"),
		Params: pool.Params{
			AcceptedToken: stake.MustParseAddress("0x00000000000000000000000000000000000a11ce"),
			RewardToken:   stake.MustParseAddress("0x000000000000000000000000000000000000b0b0"),
			APR:           10,
			LockDuration:  100,
			StartJoinTime: 1000,
			EndJoinTime:   2000,
		},
	}, store, ledger.New(store), pool.NewAuthority(stake.MustParseAddress("0x0000000000000000000000000000000000000001")), pool.NewManualClock(1000))
	require.NoError(t, err)
	t.Cleanup(p.Close)

	ts := httptest.NewServer(New(p, db, opts))
	t.Cleanup(ts.Close)
	return ts
}

func TestRouter(t *testing.T) {
	var logsEnabled atomic.Bool
	ts := newTestAPI(t, Options{
		AllowedOrigins: "*",
		LogsLimit:      100,
		APILogsEnabled: &logsEnabled,
	})

	res, err := http.Get(ts.URL + "/staking/pool")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, float64(10), body["apr"])

	res, err = http.Get(ts.URL + "/no/such/path")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestRouterSkipEvents(t *testing.T) {
	ts := newTestAPI(t, Options{SkipEvents: true})

	res, err := http.Post(ts.URL+"/events", "application/json", nil)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
