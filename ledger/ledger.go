// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/stakemesh/linearpool/kv"
	"github.com/stakemesh/linearpool/log"
	"github.com/stakemesh/linearpool/stake"
)

var logger = log.WithContext("pkg", "ledger")

// ErrInsufficientBalance is returned when a transfer exceeds the source balance.
var ErrInsufficientBalance = errors.New("insufficient token balance")

// Ledger keeps per-(token, account) balances in the kv store.
// Every balance movement is all-or-nothing: either both sides of a
// transfer are applied, or the store is left untouched.
type Ledger struct {
	mu    sync.Mutex
	store kv.GetPutter
}

// New creates a ledger over the given kv store.
func New(store kv.GetPutter) *Ledger {
	return &Ledger{
		store: kv.Bucket("ledger-").NewGetPutter(store),
	}
}

func balanceKey(token, addr stake.Address) []byte {
	return append(token.Bytes(), addr.Bytes()...)
}

func (l *Ledger) getBalance(token, addr stake.Address) (*big.Int, error) {
	data, err := l.store.Get(balanceKey(token, addr))
	if err != nil {
		if l.store.IsNotFound(err) {
			return &big.Int{}, nil
		}
		return nil, errors.Wrap(err, "get balance")
	}
	var bal big.Int
	if err := rlp.DecodeBytes(data, &bal); err != nil {
		return nil, errors.Wrap(err, "decode balance")
	}
	return &bal, nil
}

func (l *Ledger) setBalance(token, addr stake.Address, bal *big.Int) error {
	data, err := rlp.EncodeToBytes(bal)
	if err != nil {
		return errors.Wrap(err, "encode balance")
	}
	return l.store.Put(balanceKey(token, addr), data)
}

// Balance returns the balance of addr for the given token.
func (l *Ledger) Balance(token, addr stake.Address) (*big.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.getBalance(token, addr)
}

// Mint credits amount of token to addr out of thin air.
// Used to seed genesis balances and to fund the reward distributor.
func (l *Ledger) Mint(token, addr stake.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errors.New("negative mint amount")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	bal, err := l.getBalance(token, addr)
	if err != nil {
		return err
	}
	if err := l.setBalance(token, addr, new(big.Int).Add(bal, amount)); err != nil {
		return err
	}
	logger.Debug("minted", "token", token, "addr", addr, "amount", amount)
	return nil
}

// Transfer moves amount of token from one account to another.
// Fails with ErrInsufficientBalance if the source holds less than amount.
func (l *Ledger) Transfer(token, from, to stake.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errors.New("negative transfer amount")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	fromBal, err := l.getBalance(token, from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return errors.WithMessagef(ErrInsufficientBalance, "transfer %v from %v", amount, from)
	}
	toBal, err := l.getBalance(token, to)
	if err != nil {
		return err
	}

	if err := l.setBalance(token, from, new(big.Int).Sub(fromBal, amount)); err != nil {
		return err
	}
	if err := l.setBalance(token, to, new(big.Int).Add(toBal, amount)); err != nil {
		// roll the source back so a half-applied transfer never survives
		if rerr := l.setBalance(token, from, fromBal); rerr != nil {
			logger.Error("failed to roll back transfer", "token", token, "from", from, "err", rerr)
		}
		return err
	}
	return nil
}
