// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/stakemesh/linearpool/kv"
	"github.com/stakemesh/linearpool/log"
	"github.com/stakemesh/linearpool/stake"
)

var logger = log.WithContext("pkg", "pool")

var keyInitialized = []byte("initialized")

// TokenLedger is the token transfer capability the pool calls out to.
// Transfers are synchronous and atomic: either the full amount moves,
// or an error is returned and no balance changed.
type TokenLedger interface {
	Transfer(token, from, to stake.Address, amount *big.Int) error
	Balance(token, addr stake.Address) (*big.Int, error)
}

// Options configure a pool at construction time.
type Options struct {
	// Owner is the only account allowed to invoke administrative operations.
	Owner stake.Address
	// Custody is the ledger account holding the staked principal.
	Custody stake.Address
	Params  Params
}

// Pool is the staking ledger. It owns per-account staking records and the
// pool-wide parameters, and serializes every state-mutating operation
// under one mutex, so operations never interleave mid-mutation.
type Pool struct {
	mu sync.Mutex

	params  Params
	custody stake.Address

	distributor      stake.Address
	emergencyEnabled bool
	totalStaked      *big.Int

	auth    Authority
	ledger  TokenLedger
	clock   Clock
	storage *storage

	feed  event.Feed
	scope event.SubscriptionScope
}

// New creates the pool over the given kv store and collaborators.
// On a fresh store the full construction contract is checked and the
// params are persisted; reopening an already-initialized pool skips the
// join-window-in-the-past check but the supplied params must match the
// stored ones.
func New(opts Options, store kv.GetPutter, ledger TokenLedger, auth Authority, clock Clock) (*Pool, error) {
	params := opts.Params
	params.normalize()

	if opts.Custody.IsZero() {
		return nil, newError(KindConfiguration, "custody address is not set")
	}

	s := newStorage(store)
	initialized, err := s.GetFlag(keyInitialized)
	if err != nil {
		return nil, err
	}

	now := clock.Now()
	if initialized {
		// params are fixed at creation, a reopen must present the same ones
		stored, ok, err := s.GetParams()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, newError(KindConfiguration, "initialized pool has no stored params")
		}
		if !params.sameCore(stored) {
			return nil, newError(KindConfiguration, "params differ from the ones the pool was created with")
		}
	} else {
		if err := params.validate(now); err != nil {
			return nil, err
		}
		if err := s.SetParams(&params); err != nil {
			return nil, err
		}
		if err := s.SetFlag(keyInitialized, true); err != nil {
			return nil, err
		}
	}

	total, err := s.GetTotalStaked()
	if err != nil {
		return nil, err
	}

	distributor := params.RewardDistributor
	if stored, ok, err := s.GetDistributor(); err != nil {
		return nil, err
	} else if ok {
		distributor = stored
	}

	emergencyEnabled, err := s.GetFlag(keyEmergencyEnabled)
	if err != nil {
		return nil, err
	}
	paused, err := s.GetFlag(keyPaused)
	if err != nil {
		return nil, err
	}
	auth.SetPaused(paused)

	p := &Pool{
		params:           params,
		custody:          opts.Custody,
		distributor:      distributor,
		emergencyEnabled: emergencyEnabled,
		totalStaked:      total,
		auth:             auth,
		ledger:           ledger,
		clock:            clock,
		storage:          s,
	}
	p.updateStakedGauge()

	logger.Info("pool ready",
		"acceptedToken", params.AcceptedToken,
		"rewardToken", params.RewardToken,
		"apr", params.APR,
		"lockDuration", params.LockDuration,
		"joinWindow", params.EndJoinTime-params.StartJoinTime,
		"totalStaked", total,
	)
	return p, nil
}

// Close releases feed subscriptions.
func (p *Pool) Close() {
	p.scope.Close()
}

// SubscribeEvents subscribes ch to pool events, delivered after the
// causing operation has committed.
func (p *Pool) SubscribeEvents(ch chan *Event) event.Subscription {
	return p.scope.Track(p.feed.Subscribe(ch))
}

//
// Getters - no state change, never gated by pause
//

// Params returns a copy of the pool parameters.
func (p *Pool) Params() Params {
	return p.params
}

// Custody returns the pool's custody account.
func (p *Pool) Custody() stake.Address {
	return p.custody
}

// Distributor returns the current reward distributor.
func (p *Pool) Distributor() stake.Address {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.distributor
}

// EmergencyWithdrawEnabled reports the owner-toggled escape hatch state.
func (p *Pool) EmergencyWithdrawEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.emergencyEnabled
}

// Paused reports the pause gate state.
func (p *Pool) Paused() bool {
	return p.auth.IsPaused()
}

// TotalStaked returns the total staked principal across all accounts.
func (p *Pool) TotalStaked() *big.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return new(big.Int).Set(p.totalStaked)
}

// GetRecord returns the staking record of addr, zeroed if it never staked.
func (p *Pool) GetRecord(addr stake.Address) (*Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.storage.GetRecord(addr)
}

// BalanceOf returns the staked principal of addr.
func (p *Pool) BalanceOf(addr stake.Address) (*big.Int, error) {
	rec, err := p.GetRecord(addr)
	if err != nil {
		return nil, err
	}
	return rec.Balance, nil
}

// PendingReward returns the settled plus currently accruing reward of addr.
func (p *Pool) PendingReward(addr stake.Address) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rec, err := p.storage.GetRecord(addr)
	if err != nil {
		return nil, err
	}
	return rec.PendingReward(p.clock.Now(), p.params.LockDuration, p.params.APR), nil
}

//
// Transitions
//

// Deposit stakes amount of the accepted token for beneficiary, pulled from
// caller's balance. A zero beneficiary means self-deposit. Every deposit
// re-arms the lock for the beneficiary's entire balance.
func (p *Pool) Deposit(caller, beneficiary stake.Address, amount *big.Int) (err error) {
	defer p.meterOp("deposit", time.Now(), &err)
	ev, err := p.deposit(caller, beneficiary, amount)
	p.publish(ev)
	return err
}

func (p *Pool) deposit(caller, beneficiary stake.Address, amount *big.Int) (*Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.auth.IsPaused() {
		return nil, newError(KindPaused, "pool is paused")
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, newError(KindState, "deposit amount must be positive")
	}
	now := p.clock.Now()
	if now < p.params.StartJoinTime || now > p.params.EndJoinTime {
		return nil, newError(KindWindow, "deposit outside join window [%d, %d], now %d",
			p.params.StartJoinTime, p.params.EndJoinTime, now)
	}
	if beneficiary.IsZero() {
		beneficiary = caller
	}

	rec, err := p.storage.GetRecord(beneficiary)
	if err != nil {
		return nil, err
	}

	newBalance := new(big.Int).Add(rec.Balance, amount)
	if p.params.MinInvestment.Sign() > 0 && newBalance.Cmp(p.params.MinInvestment) < 0 {
		return nil, newError(KindState, "balance %v below min investment %v", newBalance, p.params.MinInvestment)
	}
	if p.params.MaxInvestment.Sign() > 0 && newBalance.Cmp(p.params.MaxInvestment) > 0 {
		return nil, newError(KindState, "balance %v above max investment %v", newBalance, p.params.MaxInvestment)
	}
	newTotal := new(big.Int).Add(p.totalStaked, amount)
	if p.params.Cap.Sign() > 0 && newTotal.Cmp(p.params.Cap) > 0 {
		return nil, newError(KindState, "total staked %v above pool cap %v", newTotal, p.params.Cap)
	}

	// settle pending reward against the pre-deposit balance, then mutate
	rec.settle(now, p.params.LockDuration, p.params.APR)
	rec.Balance = newBalance
	rec.JoinTime = now

	if err := p.ledger.Transfer(p.params.AcceptedToken, caller, p.custody, amount); err != nil {
		return nil, newError(KindTransfer, "pull stake: %s", err.Error())
	}

	if err := p.commitRecord(beneficiary, rec, newTotal); err != nil {
		// undo the pull so the failed deposit leaves no trace in the ledger
		if rerr := p.ledger.Transfer(p.params.AcceptedToken, p.custody, caller, amount); rerr != nil {
			logger.Error("failed to undo stake pull", "account", caller, "err", rerr)
		}
		return nil, err
	}

	metricDepositCount().Add(1)
	p.updateStakedGauge()
	logger.Debug("deposit", "account", beneficiary, "amount", amount, "balance", rec.Balance)
	return &Event{EventDeposit, beneficiary, p.params.AcceptedToken, new(big.Int).Set(amount), now}, nil
}

// Withdraw removes amount of staked principal and realizes any settled
// reward. Fails before joinTime+lockDuration has elapsed.
func (p *Pool) Withdraw(caller stake.Address, amount *big.Int) (err error) {
	defer p.meterOp("withdraw", time.Now(), &err)
	events, err := p.withdraw(caller, amount, false)
	p.publish(events...)
	return err
}

// WithdrawAll liquidates the caller's whole staked balance plus reward.
func (p *Pool) WithdrawAll(caller stake.Address) (err error) {
	defer p.meterOp("withdraw", time.Now(), &err)
	events, err := p.withdraw(caller, nil, true)
	p.publish(events...)
	return err
}

// Claim realizes the accrued reward without disturbing the stake.
func (p *Pool) Claim(caller stake.Address) (err error) {
	defer p.meterOp("claim", time.Now(), &err)
	events, err := p.withdraw(caller, &big.Int{}, false)
	p.publish(events...)
	return err
}

func (p *Pool) withdraw(caller stake.Address, amount *big.Int, all bool) ([]*Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.auth.IsPaused() {
		return nil, newError(KindPaused, "pool is paused")
	}
	if amount != nil && amount.Sign() < 0 {
		return nil, newError(KindState, "negative withdraw amount")
	}

	now := p.clock.Now()
	rec, err := p.storage.GetRecord(caller)
	if err != nil {
		return nil, err
	}
	if lockEnd := rec.JoinTime + p.params.LockDuration; now < lockEnd {
		return nil, newError(KindLock, "locked until %d, now %d", lockEnd, now)
	}
	if all {
		amount = new(big.Int).Set(rec.Balance)
	}
	if amount.Cmp(rec.Balance) > 0 {
		return nil, newError(KindInsufficientBalance, "withdraw %v exceeds balance %v", amount, rec.Balance)
	}

	rec.settle(now, p.params.LockDuration, p.params.APR)
	reward := new(big.Int).Set(rec.Reward)

	if reward.Sign() > 0 {
		if p.distributor.IsZero() {
			return nil, newError(KindTransfer, "reward distributor is not set")
		}
		if err := p.ledger.Transfer(p.params.RewardToken, p.distributor, caller, reward); err != nil {
			return nil, newError(KindTransfer, "pay reward: %s", err.Error())
		}
		rec.Reward = &big.Int{}
	}

	if amount.Sign() > 0 {
		if err := p.ledger.Transfer(p.params.AcceptedToken, p.custody, caller, amount); err != nil {
			p.refundReward(caller, reward)
			return nil, newError(KindTransfer, "return principal: %s", err.Error())
		}
		rec.Balance = new(big.Int).Sub(rec.Balance, amount)
	}

	newTotal := new(big.Int).Sub(p.totalStaked, amount)
	if err := p.commitRecord(caller, rec, newTotal); err != nil {
		p.refundReward(caller, reward)
		if amount.Sign() > 0 {
			if rerr := p.ledger.Transfer(p.params.AcceptedToken, caller, p.custody, amount); rerr != nil {
				logger.Error("failed to undo principal return", "account", caller, "err", rerr)
			}
		}
		return nil, err
	}

	var events []*Event
	if reward.Sign() > 0 {
		metricRewardsPaidCount().Add(1)
		events = append(events, &Event{EventRewardsHarvested, caller, p.params.RewardToken, reward, now})
	}
	if amount.Sign() > 0 {
		metricWithdrawCount().Add(1)
		p.updateStakedGauge()
		events = append(events, &Event{EventWithdraw, caller, p.params.AcceptedToken, amount, now})
	}
	logger.Debug("withdraw", "account", caller, "amount", amount, "reward", reward)
	return events, nil
}

// EmergencyWithdraw returns the caller's full principal immediately,
// forfeiting any unpaid reward and bypassing the lock. Only available
// while the owner has the escape hatch enabled.
func (p *Pool) EmergencyWithdraw(caller stake.Address) (err error) {
	defer p.meterOp("emergency_withdraw", time.Now(), &err)
	ev, err := p.emergencyWithdraw(caller)
	p.publish(ev)
	return err
}

func (p *Pool) emergencyWithdraw(caller stake.Address) (*Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.auth.IsPaused() {
		return nil, newError(KindPaused, "pool is paused")
	}
	if !p.emergencyEnabled {
		return nil, newError(KindState, "emergency withdraw is disabled")
	}

	rec, err := p.storage.GetRecord(caller)
	if err != nil {
		return nil, err
	}
	if rec.Balance.Sign() == 0 {
		return nil, newError(KindState, "nothing staked")
	}

	now := p.clock.Now()
	amount := new(big.Int).Set(rec.Balance)

	if err := p.ledger.Transfer(p.params.AcceptedToken, p.custody, caller, amount); err != nil {
		return nil, newError(KindTransfer, "return principal: %s", err.Error())
	}

	rec.Balance = &big.Int{}
	rec.Reward = &big.Int{}
	rec.UpdatedTime = now

	newTotal := new(big.Int).Sub(p.totalStaked, amount)
	if err := p.commitRecord(caller, rec, newTotal); err != nil {
		if rerr := p.ledger.Transfer(p.params.AcceptedToken, caller, p.custody, amount); rerr != nil {
			logger.Error("failed to undo emergency return", "account", caller, "err", rerr)
		}
		return nil, err
	}

	metricEmergencyCount().Add(1)
	p.updateStakedGauge()
	logger.Info("emergency withdraw", "account", caller, "amount", amount)
	return &Event{EventEmergencyWithdraw, caller, p.params.AcceptedToken, amount, now}, nil
}

//
// Administrative operations - owner only
//

// SetPaused toggles the pause gate for all value-moving operations.
func (p *Pool) SetPaused(caller stake.Address, paused bool) error {
	ev, err := p.setPaused(caller, paused)
	p.publish(ev)
	return err
}

func (p *Pool) setPaused(caller stake.Address, paused bool) (*Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.requireOwner(caller); err != nil {
		return nil, err
	}
	if err := p.storage.SetFlag(keyPaused, paused); err != nil {
		return nil, err
	}
	p.auth.SetPaused(paused)
	logger.Info("pause changed", "paused", paused)
	return &Event{EventPauseChanged, caller, stake.Address{}, boolAmount(paused), p.clock.Now()}, nil
}

// SetRewardDistributor redirects reward payouts to fund from addr.
func (p *Pool) SetRewardDistributor(caller, addr stake.Address) error {
	ev, err := p.setRewardDistributor(caller, addr)
	p.publish(ev)
	return err
}

func (p *Pool) setRewardDistributor(caller, addr stake.Address) (*Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.requireOwner(caller); err != nil {
		return nil, err
	}
	if addr.IsZero() {
		return nil, newError(KindState, "distributor address must be non-zero")
	}
	if err := p.storage.SetDistributor(addr); err != nil {
		return nil, err
	}
	p.distributor = addr
	logger.Info("reward distributor changed", "distributor", addr)
	return &Event{EventDistributorChanged, addr, p.params.RewardToken, &big.Int{}, p.clock.Now()}, nil
}

// SetEmergencyWithdrawEnabled toggles the emergency escape hatch.
func (p *Pool) SetEmergencyWithdrawEnabled(caller stake.Address, enabled bool) error {
	ev, err := p.setEmergencyWithdrawEnabled(caller, enabled)
	p.publish(ev)
	return err
}

func (p *Pool) setEmergencyWithdrawEnabled(caller stake.Address, enabled bool) (*Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.requireOwner(caller); err != nil {
		return nil, err
	}
	if err := p.storage.SetFlag(keyEmergencyEnabled, enabled); err != nil {
		return nil, err
	}
	p.emergencyEnabled = enabled
	logger.Info("emergency withdraw toggled", "enabled", enabled)
	return &Event{EventEmergencyToggled, caller, stake.Address{}, boolAmount(enabled), p.clock.Now()}, nil
}

// RecoverFund moves an arbitrary token balance out of pool custody.
// Privileged escape valve, unrelated to per-account accounting.
func (p *Pool) RecoverFund(caller, token, to stake.Address, amount *big.Int) error {
	ev, err := p.recoverFund(caller, token, to, amount)
	p.publish(ev)
	return err
}

func (p *Pool) recoverFund(caller, token, to stake.Address, amount *big.Int) (*Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.requireOwner(caller); err != nil {
		return nil, err
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, newError(KindState, "recover amount must be positive")
	}
	if err := p.ledger.Transfer(token, p.custody, to, amount); err != nil {
		return nil, newError(KindTransfer, "recover fund: %s", err.Error())
	}
	logger.Warn("fund recovered", "token", token, "to", to, "amount", amount)
	return &Event{EventFundRecovered, to, token, new(big.Int).Set(amount), p.clock.Now()}, nil
}

//
// internals
//

// publish delivers events once the pool mutex has been released, so a
// subscriber that stops draining stalls only the operation that produced
// the events, never the pool as a whole.
func (p *Pool) publish(events ...*Event) {
	for _, ev := range events {
		if ev != nil {
			p.feed.Send(ev)
		}
	}
}

func (p *Pool) requireOwner(caller stake.Address) error {
	if !p.auth.IsOwner(caller) {
		return newError(KindAuthorization, "caller %v is not the owner", caller)
	}
	return nil
}

func (p *Pool) commitRecord(addr stake.Address, rec *Record, newTotal *big.Int) error {
	if err := p.storage.SetRecord(addr, rec); err != nil {
		return errors.Wrap(err, "persist staking record")
	}
	if err := p.storage.SetTotalStaked(newTotal); err != nil {
		return errors.Wrap(err, "persist total staked")
	}
	p.totalStaked = newTotal
	return nil
}

func (p *Pool) refundReward(caller stake.Address, reward *big.Int) {
	if reward.Sign() == 0 {
		return
	}
	if err := p.ledger.Transfer(p.params.RewardToken, caller, p.distributor, reward); err != nil {
		logger.Error("failed to undo reward payout", "account", caller, "err", err)
	}
}

func (p *Pool) updateStakedGauge() {
	if p.totalStaked.IsInt64() {
		metricTotalStakedGauge().Set(p.totalStaked.Int64())
	}
}

func (p *Pool) meterOp(op string, start time.Time, err *error) {
	metricOpDurationMsBucket().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
	countOpError(*err)
}

func boolAmount(on bool) *big.Int {
	if on {
		return big.NewInt(1)
	}
	return &big.Int{}
}
