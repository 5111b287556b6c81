// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"math/big"

	"github.com/stakemesh/linearpool/pool"
	"github.com/stakemesh/linearpool/stake"
)

// Event is a journaled pool event.
type Event struct {
	Seq     uint64         `json:"seq"`
	Time    uint64         `json:"time"`
	Type    pool.EventType `json:"type"`
	Account stake.Address  `json:"account"`
	Token   stake.Address  `json:"token"`
	Amount  *big.Int       `json:"amount"`
}

// Order of the returned events by seq.
type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// TimeRange filters events by [From, To] in unix seconds.
// To below From means an open upper bound.
type TimeRange struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

// Options control paging.
type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// EventFilter selects journaled events.
type EventFilter struct {
	Account *stake.Address   `json:"account"`
	Types   []pool.EventType `json:"types"`
	Range   *TimeRange       `json:"range"`
	Options *Options         `json:"options"`
	Order   Order            `json:"order"`
}
