// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pooladmin

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/stakemesh/linearpool/stake"
)

type PausedRequest struct {
	Caller stake.Address `json:"caller"`
	Paused bool          `json:"paused"`
}

type PausedResponse struct {
	Paused bool `json:"paused"`
}

type DistributorRequest struct {
	Caller      stake.Address `json:"caller"`
	Distributor stake.Address `json:"distributor"`
}

type DistributorResponse struct {
	Distributor stake.Address `json:"distributor"`
}

type EmergencyRequest struct {
	Caller  stake.Address `json:"caller"`
	Enabled bool          `json:"enabled"`
}

type EmergencyResponse struct {
	Enabled bool `json:"enabled"`
}

type RecoverFundRequest struct {
	Caller stake.Address         `json:"caller"`
	Token  stake.Address         `json:"token"`
	To     stake.Address         `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

func hexToBig(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return nil
	}
	return (*big.Int)(v)
}
