// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/stakemesh/linearpool/stake"
)

// EventType tags an observable pool event.
type EventType string

const (
	EventDeposit            EventType = "deposit"
	EventWithdraw           EventType = "withdraw"
	EventRewardsHarvested   EventType = "rewards-harvested"
	EventEmergencyWithdraw  EventType = "emergency-withdraw"
	EventDistributorChanged EventType = "distributor-changed"
	EventEmergencyToggled   EventType = "emergency-toggled"
	EventFundRecovered      EventType = "fund-recovered"
	EventPauseChanged       EventType = "pause-changed"
)

// Event is delivered to feed subscribers after the operation that caused
// it has fully committed.
type Event struct {
	Type    EventType     `json:"type"`
	Account stake.Address `json:"account"`
	Token   stake.Address `json:"token"`
	Amount  *big.Int      `json:"amount"`
	Time    uint64        `json:"time"`
}
