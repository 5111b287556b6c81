// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"context"
	"time"

	"github.com/stakemesh/linearpool/co"
	"github.com/stakemesh/linearpool/eventdb"
	"github.com/stakemesh/linearpool/health"
	"github.com/stakemesh/linearpool/log"
	"github.com/stakemesh/linearpool/pool"
)

var logger = log.WithContext("pkg", "node")

const (
	eventChanSize       = 256
	healthCheckInterval = 5 * time.Second
)

// Node glues the pool to its surroundings: it drains the pool event feed
// into the durable journal and keeps the health tracker current.
type Node struct {
	pool    *pool.Pool
	eventDB *eventdb.EventDB
	health  *health.Health
	goes    co.Goes
}

func New(p *pool.Pool, eventDB *eventdb.EventDB, h *health.Health) *Node {
	return &Node{
		pool:    p,
		eventDB: eventDB,
		health:  h,
	}
}

// Run blocks until ctx is done, journaling pool events as they arrive.
// A nil event db disables the journal loop.
func (n *Node) Run(ctx context.Context) error {
	if n.eventDB != nil {
		n.goes.Go(func() { n.journalLoop(ctx) })
	}
	n.goes.Go(func() { n.healthLoop(ctx) })

	n.goes.Wait()
	return nil
}

func (n *Node) journalLoop(ctx context.Context) {
	logger.Debug("enter journal loop")
	defer logger.Debug("leave journal loop")

	ch := make(chan *pool.Event, eventChanSize)
	sub := n.pool.SubscribeEvents(ch)
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case err := <-sub.Err():
			if err != nil {
				logger.Error("event subscription failed", "err", err)
			}
			return
		case ev := <-ch:
			n.health.EventEmitted()
			if err := n.eventDB.Log(ev); err != nil {
				logger.Warn("failed to journal event", "type", ev.Type, "err", err)
				continue
			}
			n.health.EventJournaled()
		}
	}
}

func (n *Node) healthLoop(ctx context.Context) {
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	n.updateHealth()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.updateHealth()
		}
	}
}

func (n *Node) updateHealth() {
	params := n.pool.Params()
	now := uint64(time.Now().Unix())
	windowOpen := now >= params.StartJoinTime && now <= params.EndJoinTime
	n.health.SetPoolState(n.pool.Paused(), windowOpen)
}
