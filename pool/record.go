// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/stakemesh/linearpool/stake"
)

// Record is one account's staking state.
// Reward only covers time strictly before UpdatedTime; anything accrued
// later is unsettled and must go through PendingReward.
type Record struct {
	Balance     *big.Int `json:"balance"`
	JoinTime    uint64   `json:"joinTime"`
	UpdatedTime uint64   `json:"updatedTime"`
	Reward      *big.Int `json:"reward"`
}

func newZeroRecord() *Record {
	return &Record{Balance: &big.Int{}, Reward: &big.Int{}}
}

// Encode encodes the record to rlp, empty records encode to nil.
func (r *Record) Encode() ([]byte, error) {
	if r.Balance.Sign() == 0 && r.Reward.Sign() == 0 &&
		r.JoinTime == 0 && r.UpdatedTime == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(r)
}

// Decode decodes rlp data into the record, nil data decodes to a zero record.
func (r *Record) Decode(data []byte) error {
	if len(data) == 0 {
		*r = *newZeroRecord()
		return nil
	}
	return rlp.DecodeBytes(data, r)
}

// PendingReward computes the settled reward plus the reward accrued for
// the open interval ending at now. Accrual starts at the last settlement
// checkpoint, stops at the lock boundary, and never exceeds one full lock
// period. The accrued part truncates toward zero.
func (r *Record) PendingReward(now, lockDuration, apr uint64) *big.Int {
	startTime := now
	if r.UpdatedTime > 0 {
		startTime = r.UpdatedTime
	}

	endTime := now
	if lockEnd := r.JoinTime + lockDuration; endTime > lockEnd {
		endTime = lockEnd
	}

	var elapsed uint64
	if endTime > startTime {
		elapsed = endTime - startTime
	}
	if elapsed > lockDuration {
		elapsed = lockDuration
	}

	accrued := new(big.Int).SetUint64(elapsed)
	accrued.Mul(accrued, r.Balance)
	accrued.Mul(accrued, new(big.Int).SetUint64(apr))
	accrued.Div(accrued, new(big.Int).SetUint64(stake.SecondsPerYear*stake.PercentDenominator))

	return accrued.Add(accrued, r.Reward)
}

// settle harvests the pending reward into Reward and moves the accrual
// checkpoint to now. Calling it twice at the same instant is a no-op.
func (r *Record) settle(now, lockDuration, apr uint64) {
	r.Reward = r.PendingReward(now, lockDuration, apr)
	r.UpdatedTime = now
}
