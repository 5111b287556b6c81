// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakemesh/linearpool/api/utils"
	"github.com/stakemesh/linearpool/pool"
	"github.com/stakemesh/linearpool/stake"
)

// Staking exposes the pool's deposit/withdraw/harvest operations and
// record queries over HTTP.
type Staking struct {
	pool *pool.Pool
}

func New(p *pool.Pool) *Staking {
	return &Staking{pool: p}
}

func (s *Staking) handleDeposit(w http.ResponseWriter, r *http.Request) error {
	var req DepositRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "invalid request body"))
	}
	if req.Caller.IsZero() {
		return utils.BadRequest(errors.New("caller is required"))
	}

	beneficiary := req.Caller
	if req.Beneficiary != nil {
		beneficiary = *req.Beneficiary
	}
	if err := s.pool.Deposit(req.Caller, beneficiary, hexToBig(req.Amount)); err != nil {
		return convertPoolError(err)
	}
	return s.writeAccount(w, beneficiary)
}

func (s *Staking) handleWithdraw(w http.ResponseWriter, r *http.Request) error {
	var req WithdrawRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "invalid request body"))
	}
	if req.Caller.IsZero() {
		return utils.BadRequest(errors.New("caller is required"))
	}

	var err error
	if req.Amount == nil {
		err = s.pool.WithdrawAll(req.Caller)
	} else {
		err = s.pool.Withdraw(req.Caller, hexToBig(req.Amount))
	}
	if err != nil {
		return convertPoolError(err)
	}
	return s.writeAccount(w, req.Caller)
}

func (s *Staking) handleClaim(w http.ResponseWriter, r *http.Request) error {
	var req CallerRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "invalid request body"))
	}
	if err := s.pool.Claim(req.Caller); err != nil {
		return convertPoolError(err)
	}
	return s.writeAccount(w, req.Caller)
}

func (s *Staking) handleEmergencyWithdraw(w http.ResponseWriter, r *http.Request) error {
	var req CallerRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "invalid request body"))
	}
	if err := s.pool.EmergencyWithdraw(req.Caller); err != nil {
		return convertPoolError(err)
	}
	return s.writeAccount(w, req.Caller)
}

func (s *Staking) handleGetPool(w http.ResponseWriter, _ *http.Request) error {
	params := s.pool.Params()
	return utils.WriteJSON(w, &PoolResponse{
		AcceptedToken:            params.AcceptedToken,
		RewardToken:              params.RewardToken,
		APR:                      params.APR,
		Cap:                      bigToHex(params.Cap),
		MinInvestment:            bigToHex(params.MinInvestment),
		MaxInvestment:            bigToHex(params.MaxInvestment),
		LockDuration:             params.LockDuration,
		StartJoinTime:            params.StartJoinTime,
		EndJoinTime:              params.EndJoinTime,
		RewardDistributor:        s.pool.Distributor(),
		TotalStaked:              bigToHex(s.pool.TotalStaked()),
		Paused:                   s.pool.Paused(),
		EmergencyWithdrawEnabled: s.pool.EmergencyWithdrawEnabled(),
	})
}

func (s *Staking) handleGetAccount(w http.ResponseWriter, r *http.Request) error {
	addr, err := stake.ParseAddress(mux.Vars(r)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	return s.writeAccount(w, addr)
}

func (s *Staking) handleGetReward(w http.ResponseWriter, r *http.Request) error {
	addr, err := stake.ParseAddress(mux.Vars(r)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	pending, err := s.pool.PendingReward(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &RewardResponse{PendingReward: bigToHex(pending)})
}

func (s *Staking) writeAccount(w http.ResponseWriter, addr stake.Address) error {
	rec, err := s.pool.GetRecord(addr)
	if err != nil {
		return err
	}
	pending, err := s.pool.PendingReward(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, accountResponse(rec, pending))
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/deposits").
		Methods(http.MethodPost).
		Name("staking_deposit").
		HandlerFunc(utils.WrapHandlerFunc(s.handleDeposit))
	sub.Path("/withdrawals").
		Methods(http.MethodPost).
		Name("staking_withdraw").
		HandlerFunc(utils.WrapHandlerFunc(s.handleWithdraw))
	sub.Path("/claims").
		Methods(http.MethodPost).
		Name("staking_claim").
		HandlerFunc(utils.WrapHandlerFunc(s.handleClaim))
	sub.Path("/emergency-withdrawals").
		Methods(http.MethodPost).
		Name("staking_emergency_withdraw").
		HandlerFunc(utils.WrapHandlerFunc(s.handleEmergencyWithdraw))
	sub.Path("/pool").
		Methods(http.MethodGet).
		Name("staking_get_pool").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetPool))
	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("staking_get_account").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetAccount))
	sub.Path("/accounts/{address}/reward").
		Methods(http.MethodGet).
		Name("staking_get_reward").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetReward))
}

// convertPoolError maps the pool error taxonomy onto http statuses.
func convertPoolError(err error) error {
	switch pool.ErrKind(err) {
	case pool.KindAuthorization:
		return utils.Forbidden(err)
	case pool.KindPaused, pool.KindState:
		return utils.Conflict(err)
	case pool.KindWindow, pool.KindLock, pool.KindInsufficientBalance,
		pool.KindTransfer, pool.KindConfiguration:
		return utils.BadRequest(err)
	default:
		return err
	}
}
