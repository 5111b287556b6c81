// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/stakemesh/linearpool/stake"
)

// Params are the pool parameters fixed at construction time.
// Only RewardDistributor may be redirected afterwards, via the owner API.
type Params struct {
	AcceptedToken stake.Address
	RewardToken   stake.Address

	// APR is the annual percentage rate numerator over an implicit 100
	// denominator, i.e. APR=10 means 10% a year.
	APR uint64

	// Cap bounds the total staked amount, zero means unbounded.
	Cap *big.Int

	// MinInvestment/MaxInvestment bound a single account's staked balance.
	// A zero MaxInvestment means unbounded.
	MinInvestment *big.Int
	MaxInvestment *big.Int

	// LockDuration is the minimum staking time in seconds, measured from
	// the account's most recent deposit.
	LockDuration uint64

	// StartJoinTime/EndJoinTime is the window during which deposits are
	// accepted, in unix seconds.
	StartJoinTime uint64
	EndJoinTime   uint64

	RewardDistributor stake.Address
}

func (p *Params) normalize() {
	if p.Cap == nil {
		p.Cap = &big.Int{}
	}
	if p.MinInvestment == nil {
		p.MinInvestment = &big.Int{}
	}
	if p.MaxInvestment == nil {
		p.MaxInvestment = &big.Int{}
	}
}

// sameCore reports whether the immutable construction-time fields match.
// RewardDistributor is excluded, it is a default the owner may redirect.
func (p *Params) sameCore(o *Params) bool {
	return p.AcceptedToken == o.AcceptedToken &&
		p.RewardToken == o.RewardToken &&
		p.APR == o.APR &&
		p.Cap.Cmp(o.Cap) == 0 &&
		p.MinInvestment.Cmp(o.MinInvestment) == 0 &&
		p.MaxInvestment.Cmp(o.MaxInvestment) == 0 &&
		p.LockDuration == o.LockDuration &&
		p.StartJoinTime == o.StartJoinTime &&
		p.EndJoinTime == o.EndJoinTime
}

// validate checks the construction-time invariants.
func (p *Params) validate(now uint64) error {
	if p.AcceptedToken.IsZero() {
		return newError(KindConfiguration, "accepted token is not set")
	}
	if p.RewardToken.IsZero() {
		return newError(KindConfiguration, "reward token is not set")
	}
	if p.StartJoinTime < now {
		return newError(KindConfiguration, "start join time %d is in the past (now %d)", p.StartJoinTime, now)
	}
	if p.EndJoinTime <= p.StartJoinTime {
		return newError(KindConfiguration, "end join time %d not after start join time %d", p.EndJoinTime, p.StartJoinTime)
	}
	if p.MaxInvestment.Sign() > 0 && p.MaxInvestment.Cmp(p.MinInvestment) < 0 {
		return newError(KindConfiguration, "max investment %v below min investment %v", p.MaxInvestment, p.MinInvestment)
	}
	if p.Cap.Sign() < 0 || p.MinInvestment.Sign() < 0 || p.MaxInvestment.Sign() < 0 {
		return newError(KindConfiguration, "negative investment bound")
	}
	return nil
}
