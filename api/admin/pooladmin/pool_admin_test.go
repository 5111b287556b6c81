// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pooladmin

import (
	"bytes"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemesh/linearpool/kv"
	"github.com/stakemesh/linearpool/ledger"
	"github.com/stakemesh/linearpool/pool"
	"github.com/stakemesh/linearpool/stake"
)

var (
	acceptedToken = stake.MustParseAddress("0x00000000000000000000000000000000000a11ce")
	rewardToken   = stake.MustParseAddress("0x000000000000000000000000000000000000b0b0")
	strayToken    = stake.MustParseAddress("0x000000000000000000000000000000000000feed")
	owner         = stake.MustParseAddress("0x0000000000000000000000000000000000000001")
	custody       = stake.MustParseAddress("0x0000000000000000000000000000000000000002")
	distributor   = stake.MustParseAddress("0x0000000000000000000000000000000000000003")
	stranger      = stake.MustParseAddress("0x000000000000000000000000000000000000dead")
)

func newTestServer(t *testing.T) (*httptest.Server, *pool.Pool, *ledger.Ledger) {
	store, err := kv.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ldg := ledger.New(store)
	p, err := pool.New(pool.Options{
		Owner:   owner,
		Custody: custody,
		Params: pool.Params{
			AcceptedToken: acceptedToken,
			RewardToken:   rewardToken,
			APR:           10,
			LockDuration:  100,
			StartJoinTime: 1000,
			EndJoinTime:   2000,
		},
	}, store, ldg, pool.NewAuthority(owner), pool.NewManualClock(1000))
	require.NoError(t, err)
	t.Cleanup(p.Close)

	router := mux.NewRouter()
	New(p).Mount(router, "/admin/pool")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, p, ldg
}

func post(t *testing.T, ts *httptest.Server, path string, body interface{}) (int, []byte) {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer res.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(res.Body)
	require.NoError(t, err)
	return res.StatusCode, buf.Bytes()
}

func TestSetPaused(t *testing.T) {
	ts, p, _ := newTestServer(t)

	status, _ := post(t, ts, "/admin/pool/paused", &PausedRequest{Caller: stranger, Paused: true})
	assert.Equal(t, http.StatusForbidden, status)
	assert.False(t, p.Paused())

	status, raw := post(t, ts, "/admin/pool/paused", &PausedRequest{Caller: owner, Paused: true})
	require.Equal(t, http.StatusOK, status)
	var res PausedResponse
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.True(t, res.Paused)
	assert.True(t, p.Paused())
}

func TestSetDistributor(t *testing.T) {
	ts, p, _ := newTestServer(t)

	// zero distributor is rejected
	status, _ := post(t, ts, "/admin/pool/distributor", &DistributorRequest{Caller: owner})
	assert.Equal(t, http.StatusConflict, status)

	status, raw := post(t, ts, "/admin/pool/distributor", &DistributorRequest{
		Caller:      owner,
		Distributor: distributor,
	})
	require.Equal(t, http.StatusOK, status)
	var res DistributorResponse
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.Equal(t, distributor, res.Distributor)
	assert.Equal(t, distributor, p.Distributor())
}

func TestSetEmergency(t *testing.T) {
	ts, p, _ := newTestServer(t)

	status, raw := post(t, ts, "/admin/pool/emergency", &EmergencyRequest{Caller: owner, Enabled: true})
	require.Equal(t, http.StatusOK, status)
	var res EmergencyResponse
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.True(t, res.Enabled)
	assert.True(t, p.EmergencyWithdrawEnabled())
}

func TestRecoverFund(t *testing.T) {
	ts, _, ldg := newTestServer(t)

	require.NoError(t, ldg.Mint(strayToken, custody, big.NewInt(77)))

	status, _ := post(t, ts, "/admin/pool/recovered-funds", &RecoverFundRequest{
		Caller: owner,
		Token:  strayToken,
		To:     owner,
		Amount: (*math.HexOrDecimal256)(big.NewInt(77)),
	})
	require.Equal(t, http.StatusOK, status)

	bal, err := ldg.Balance(strayToken, owner)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(77), bal)
}
