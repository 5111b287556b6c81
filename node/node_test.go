// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemesh/linearpool/eventdb"
	"github.com/stakemesh/linearpool/health"
	"github.com/stakemesh/linearpool/kv"
	"github.com/stakemesh/linearpool/ledger"
	"github.com/stakemesh/linearpool/pool"
	"github.com/stakemesh/linearpool/stake"
)

func TestNodeJournalsEvents(t *testing.T) {
	db, err := kv.NewMem()
	require.NoError(t, err)
	defer db.Close()

	eventDB, err := eventdb.NewMem()
	require.NoError(t, err)
	defer eventDB.Close()

	l := ledger.New(db)
	clock := pool.NewManualClock(1000)
	owner := stake.BytesToAddress([]byte("owner"))
	token := stake.BytesToAddress([]byte("stk"))
	account := stake.BytesToAddress([]byte("a1"))

	p, err := pool.New(pool.Options{
		Owner:   owner,
		Custody: stake.BytesToAddress([]byte("custody")),
		Params: pool.Params{
			AcceptedToken:     token,
			RewardToken:       token,
			APR:               10,
			LockDuration:      100,
			StartJoinTime:     1000,
			EndJoinTime:       2000,
			RewardDistributor: owner,
		},
	}, db, l, pool.NewAuthority(owner), clock)
	require.NoError(t, err)
	defer p.Close()

	var h health.Health
	n := New(p, eventDB, &h)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		n.Run(ctx)
	}()

	require.NoError(t, l.Mint(token, account, big.NewInt(500)))
	require.NoError(t, p.Deposit(account, account, big.NewInt(500)))

	// the journal loop is async, poll for the write
	assert.Eventually(t, func() bool {
		events, err := eventDB.Filter(context.Background(), nil)
		return err == nil && len(events) == 1 &&
			events[0].Type == pool.EventDeposit &&
			events[0].Amount.Cmp(big.NewInt(500)) == 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("node did not stop")
	}
}
