// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/stakemesh/linearpool/eventdb"
	"github.com/stakemesh/linearpool/pool"
	"github.com/stakemesh/linearpool/stake"
)

// EventFilter is the wire form of an event query.
type EventFilter struct {
	Account *stake.Address     `json:"account"`
	Types   []pool.EventType   `json:"types"`
	Range   *eventdb.TimeRange `json:"range"`
	Options *eventdb.Options   `json:"options"`
	Order   eventdb.Order      `json:"order"`
}

// FilteredEvent is one journaled event in a query response.
type FilteredEvent struct {
	Seq     uint64                `json:"seq"`
	Time    uint64                `json:"time"`
	Type    pool.EventType        `json:"type"`
	Account stake.Address         `json:"account"`
	Token   stake.Address         `json:"token"`
	Amount  *math.HexOrDecimal256 `json:"amount"`
}

func convertEvent(ev *eventdb.Event) *FilteredEvent {
	amount := ev.Amount
	if amount == nil {
		amount = &big.Int{}
	}
	return &FilteredEvent{
		Seq:     ev.Seq,
		Time:    ev.Time,
		Type:    ev.Type,
		Account: ev.Account,
		Token:   ev.Token,
		Amount:  (*math.HexOrDecimal256)(amount),
	}
}
