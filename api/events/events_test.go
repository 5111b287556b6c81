// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemesh/linearpool/eventdb"
	"github.com/stakemesh/linearpool/pool"
	"github.com/stakemesh/linearpool/stake"
)

var (
	token = stake.MustParseAddress("0x00000000000000000000000000000000000a11ce")
	alice = stake.MustParseAddress("0x0000000000000000000000000000000000000a0a")
	bob   = stake.MustParseAddress("0x0000000000000000000000000000000000000b0b")
)

const queryLimit = 5

func newTestServer(t *testing.T) *httptest.Server {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	for i := range 10 {
		account := alice
		evType := pool.EventDeposit
		if i%2 == 1 {
			account = bob
			evType = pool.EventWithdraw
		}
		require.NoError(t, db.Log(&pool.Event{
			Type:    evType,
			Account: account,
			Token:   token,
			Amount:  big.NewInt(int64(100 + i)),
			Time:    uint64(1000 + i),
		}))
	}

	router := mux.NewRouter()
	New(db, queryLimit).Mount(router, "/events")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func filterEvents(t *testing.T, ts *httptest.Server, filter *EventFilter) (int, []*FilteredEvent) {
	data, err := json.Marshal(filter)
	require.NoError(t, err)
	res, err := http.Post(ts.URL+"/events", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	if res.StatusCode != http.StatusOK {
		return res.StatusCode, nil
	}
	var found []*FilteredEvent
	require.NoError(t, json.Unmarshal(raw, &found))
	return res.StatusCode, found
}

func TestFilterByAccount(t *testing.T) {
	ts := newTestServer(t)

	status, found := filterEvents(t, ts, &EventFilter{
		Account: &alice,
		Options: &eventdb.Options{Limit: queryLimit},
	})
	require.Equal(t, http.StatusOK, status)
	require.Len(t, found, 5)
	for _, ev := range found {
		assert.Equal(t, alice, ev.Account)
		assert.Equal(t, pool.EventDeposit, ev.Type)
	}
}

func TestFilterByTypeAndOrder(t *testing.T) {
	ts := newTestServer(t)

	status, found := filterEvents(t, ts, &EventFilter{
		Types:   []pool.EventType{pool.EventWithdraw},
		Order:   eventdb.DESC,
		Options: &eventdb.Options{Limit: queryLimit},
	})
	require.Equal(t, http.StatusOK, status)
	require.Len(t, found, 5)
	assert.Equal(t, big.NewInt(109), (*big.Int)(found[0].Amount))
	for i := 1; i < len(found); i++ {
		assert.Less(t, found[i].Seq, found[i-1].Seq)
	}
}

func TestFilterByRange(t *testing.T) {
	ts := newTestServer(t)

	status, found := filterEvents(t, ts, &EventFilter{
		Range:   &eventdb.TimeRange{From: 1002, To: 1004},
		Options: &eventdb.Options{Limit: queryLimit},
	})
	require.Equal(t, http.StatusOK, status)
	require.Len(t, found, 3)
}

func TestFilterLimitEnforced(t *testing.T) {
	ts := newTestServer(t)

	// default limit applies when no paging options are present
	status, found := filterEvents(t, ts, &EventFilter{})
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, found, queryLimit)

	status, _ = filterEvents(t, ts, &EventFilter{
		Options: &eventdb.Options{Limit: queryLimit + 1},
	})
	assert.Equal(t, http.StatusForbidden, status)
}
