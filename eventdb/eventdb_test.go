// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemesh/linearpool/pool"
	"github.com/stakemesh/linearpool/stake"
)

func newTestDB(t *testing.T) *EventDB {
	db, err := NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func logEvent(t *testing.T, db *EventDB, typ pool.EventType, account stake.Address, amount int64, time uint64) {
	require.NoError(t, db.Log(&pool.Event{
		Type:    typ,
		Account: account,
		Token:   stake.BytesToAddress([]byte("token")),
		Amount:  big.NewInt(amount),
		Time:    time,
	}))
}

func TestLogAndFilterAll(t *testing.T) {
	db := newTestDB(t)
	a1 := stake.BytesToAddress([]byte("a1"))

	logEvent(t, db, pool.EventDeposit, a1, 100, 10)
	logEvent(t, db, pool.EventWithdraw, a1, 60, 20)

	events, err := db.Filter(context.Background(), nil)
	assert.Nil(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, pool.EventDeposit, events[0].Type)
	assert.Equal(t, big.NewInt(100), events[0].Amount)
	assert.Equal(t, uint64(10), events[0].Time)
	assert.Equal(t, a1, events[0].Account)
}

func TestFilterByAccountAndType(t *testing.T) {
	db := newTestDB(t)
	a1 := stake.BytesToAddress([]byte("a1"))
	a2 := stake.BytesToAddress([]byte("a2"))

	logEvent(t, db, pool.EventDeposit, a1, 100, 10)
	logEvent(t, db, pool.EventDeposit, a2, 200, 11)
	logEvent(t, db, pool.EventRewardsHarvested, a1, 4, 12)

	events, err := db.Filter(context.Background(), &EventFilter{Account: &a1})
	assert.Nil(t, err)
	assert.Len(t, events, 2)

	events, err = db.Filter(context.Background(), &EventFilter{
		Account: &a1,
		Types:   []pool.EventType{pool.EventRewardsHarvested},
	})
	assert.Nil(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, big.NewInt(4), events[0].Amount)
}

func TestFilterRangeOrderAndPaging(t *testing.T) {
	db := newTestDB(t)
	a1 := stake.BytesToAddress([]byte("a1"))

	for i := uint64(1); i <= 5; i++ {
		logEvent(t, db, pool.EventDeposit, a1, int64(i), i*10)
	}

	events, err := db.Filter(context.Background(), &EventFilter{
		Range: &TimeRange{From: 20, To: 40},
	})
	assert.Nil(t, err)
	assert.Len(t, events, 3)

	events, err = db.Filter(context.Background(), &EventFilter{
		Order:   DESC,
		Options: &Options{Offset: 0, Limit: 2},
	})
	assert.Nil(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, big.NewInt(5), events[0].Amount)
	assert.Equal(t, big.NewInt(4), events[1].Amount)
}
