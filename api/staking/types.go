// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/stakemesh/linearpool/pool"
	"github.com/stakemesh/linearpool/stake"
)

type DepositRequest struct {
	Caller stake.Address `json:"caller"`
	// Beneficiary defaults to the caller when omitted.
	Beneficiary *stake.Address        `json:"beneficiary"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
}

type WithdrawRequest struct {
	Caller stake.Address `json:"caller"`
	// Amount nil means withdraw-all.
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type CallerRequest struct {
	Caller stake.Address `json:"caller"`
}

type AccountResponse struct {
	Balance       *math.HexOrDecimal256 `json:"balance"`
	JoinTime      uint64                `json:"joinTime"`
	UpdatedTime   uint64                `json:"updatedTime"`
	Reward        *math.HexOrDecimal256 `json:"reward"`
	PendingReward *math.HexOrDecimal256 `json:"pendingReward"`
}

type RewardResponse struct {
	PendingReward *math.HexOrDecimal256 `json:"pendingReward"`
}

type PoolResponse struct {
	AcceptedToken            stake.Address         `json:"acceptedToken"`
	RewardToken              stake.Address         `json:"rewardToken"`
	APR                      uint64                `json:"apr"`
	Cap                      *math.HexOrDecimal256 `json:"cap"`
	MinInvestment            *math.HexOrDecimal256 `json:"minInvestment"`
	MaxInvestment            *math.HexOrDecimal256 `json:"maxInvestment"`
	LockDuration             uint64                `json:"lockDuration"`
	StartJoinTime            uint64                `json:"startJoinTime"`
	EndJoinTime              uint64                `json:"endJoinTime"`
	RewardDistributor        stake.Address         `json:"rewardDistributor"`
	TotalStaked              *math.HexOrDecimal256 `json:"totalStaked"`
	Paused                   bool                  `json:"paused"`
	EmergencyWithdrawEnabled bool                  `json:"emergencyWithdrawEnabled"`
}

func bigToHex(v *big.Int) *math.HexOrDecimal256 {
	if v == nil {
		v = &big.Int{}
	}
	return (*math.HexOrDecimal256)(v)
}

func hexToBig(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return nil
	}
	return (*big.Int)(v)
}

func accountResponse(rec *pool.Record, pending *big.Int) *AccountResponse {
	return &AccountResponse{
		Balance:       bigToHex(rec.Balance),
		JoinTime:      rec.JoinTime,
		UpdatedTime:   rec.UpdatedTime,
		Reward:        bigToHex(rec.Reward),
		PendingReward: bigToHex(pending),
	}
}
