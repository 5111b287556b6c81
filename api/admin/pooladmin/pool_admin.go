// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pooladmin

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakemesh/linearpool/api/utils"
	"github.com/stakemesh/linearpool/pool"
)

// PoolAdmin exposes the owner-only pool operations. Every request names
// the caller and the pool itself rejects callers other than the owner.
type PoolAdmin struct {
	pool *pool.Pool
}

func New(p *pool.Pool) *PoolAdmin {
	return &PoolAdmin{pool: p}
}

func (a *PoolAdmin) handleSetPaused(w http.ResponseWriter, r *http.Request) error {
	var req PausedRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "invalid request body"))
	}
	if err := a.pool.SetPaused(req.Caller, req.Paused); err != nil {
		return convertPoolError(err)
	}
	return utils.WriteJSON(w, &PausedResponse{Paused: a.pool.Paused()})
}

func (a *PoolAdmin) handleSetDistributor(w http.ResponseWriter, r *http.Request) error {
	var req DistributorRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "invalid request body"))
	}
	if err := a.pool.SetRewardDistributor(req.Caller, req.Distributor); err != nil {
		return convertPoolError(err)
	}
	return utils.WriteJSON(w, &DistributorResponse{Distributor: a.pool.Distributor()})
}

func (a *PoolAdmin) handleSetEmergency(w http.ResponseWriter, r *http.Request) error {
	var req EmergencyRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "invalid request body"))
	}
	if err := a.pool.SetEmergencyWithdrawEnabled(req.Caller, req.Enabled); err != nil {
		return convertPoolError(err)
	}
	return utils.WriteJSON(w, &EmergencyResponse{Enabled: a.pool.EmergencyWithdrawEnabled()})
}

func (a *PoolAdmin) handleRecoverFund(w http.ResponseWriter, r *http.Request) error {
	var req RecoverFundRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "invalid request body"))
	}
	if err := a.pool.RecoverFund(req.Caller, req.Token, req.To, hexToBig(req.Amount)); err != nil {
		return convertPoolError(err)
	}
	return utils.WriteJSON(w, utils.M{"recovered": true})
}

func (a *PoolAdmin) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/paused").
		Methods(http.MethodPost).
		Name("pooladmin_set_paused").
		HandlerFunc(utils.WrapHandlerFunc(a.handleSetPaused))
	sub.Path("/distributor").
		Methods(http.MethodPost).
		Name("pooladmin_set_distributor").
		HandlerFunc(utils.WrapHandlerFunc(a.handleSetDistributor))
	sub.Path("/emergency").
		Methods(http.MethodPost).
		Name("pooladmin_set_emergency").
		HandlerFunc(utils.WrapHandlerFunc(a.handleSetEmergency))
	sub.Path("/recovered-funds").
		Methods(http.MethodPost).
		Name("pooladmin_recover_fund").
		HandlerFunc(utils.WrapHandlerFunc(a.handleRecoverFund))
}

func convertPoolError(err error) error {
	switch pool.ErrKind(err) {
	case pool.KindAuthorization:
		return utils.Forbidden(err)
	case pool.KindState:
		return utils.Conflict(err)
	default:
		return utils.BadRequest(err)
	}
}
