// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"sync/atomic"

	"github.com/stakemesh/linearpool/stake"
)

// Authority is the authorization collaborator: it answers ownership checks
// and holds the pause gate for value-moving operations.
type Authority interface {
	IsOwner(caller stake.Address) bool
	IsPaused() bool
	SetPaused(paused bool)
}

type authority struct {
	owner  stake.Address
	paused atomic.Bool
}

// NewAuthority creates the default single-owner authority.
func NewAuthority(owner stake.Address) Authority {
	return &authority{owner: owner}
}

func (a *authority) IsOwner(caller stake.Address) bool {
	return caller == a.owner
}

func (a *authority) IsPaused() bool {
	return a.paused.Load()
}

func (a *authority) SetPaused(paused bool) {
	a.paused.Store(paused)
}
