// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/stakemesh/linearpool/kv"
	"github.com/stakemesh/linearpool/stake"
)

func newTestLedger(t *testing.T) *Ledger {
	db, err := kv.NewMem()
	assert.Nil(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func TestLedger(t *testing.T) {
	l := newTestLedger(t)

	token := stake.BytesToAddress([]byte("token"))
	a1 := stake.BytesToAddress([]byte("a1"))
	a2 := stake.BytesToAddress([]byte("a2"))

	bal, err := l.Balance(token, a1)
	assert.Nil(t, err)
	assert.Equal(t, 0, bal.Sign())

	assert.Nil(t, l.Mint(token, a1, big.NewInt(100)))

	tests := []struct {
		ret      interface{}
		expected interface{}
	}{
		{l.Transfer(token, a1, a2, big.NewInt(40)), nil},
		{mustBalance(t, l, token, a1), big.NewInt(60)},
		{mustBalance(t, l, token, a2), big.NewInt(40)},
		{l.Transfer(token, a2, a1, big.NewInt(40)), nil},
		{mustBalance(t, l, token, a2), big.NewInt(0)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.ret)
	}
}

func TestLedgerInsufficientBalance(t *testing.T) {
	l := newTestLedger(t)

	token := stake.BytesToAddress([]byte("token"))
	a1 := stake.BytesToAddress([]byte("a1"))
	a2 := stake.BytesToAddress([]byte("a2"))

	assert.Nil(t, l.Mint(token, a1, big.NewInt(10)))

	err := l.Transfer(token, a1, a2, big.NewInt(11))
	assert.True(t, errors.Is(err, ErrInsufficientBalance))

	// nothing moved
	assert.Equal(t, big.NewInt(10), mustBalance(t, l, token, a1))
	assert.Equal(t, 0, mustBalance(t, l, token, a2).Sign())
}

func TestLedgerPerTokenIsolation(t *testing.T) {
	l := newTestLedger(t)

	t1 := stake.BytesToAddress([]byte("t1"))
	t2 := stake.BytesToAddress([]byte("t2"))
	a1 := stake.BytesToAddress([]byte("a1"))

	assert.Nil(t, l.Mint(t1, a1, big.NewInt(5)))
	assert.Equal(t, big.NewInt(5), mustBalance(t, l, t1, a1))
	assert.Equal(t, 0, mustBalance(t, l, t2, a1).Sign())
}

func mustBalance(t *testing.T, l *Ledger, token, addr stake.Address) *big.Int {
	bal, err := l.Balance(token, addr)
	assert.Nil(t, err)
	return bal
}
