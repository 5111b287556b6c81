// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/stakemesh/linearpool/api/utils"
	"github.com/stakemesh/linearpool/health"
)

type API struct {
	healthStatus *health.Health
}

func NewAPI(healthStatus *health.Health) *API {
	return &API{
		healthStatus: healthStatus,
	}
}

func (h *API) handleGetHealth(w http.ResponseWriter, r *http.Request) error {
	maxJournalLag := health.DefaultMaxJournalLag()
	if queryLag := r.URL.Query().Get("maxJournalLag"); queryLag != "" {
		if parsed, err := time.ParseDuration(queryLag); err == nil {
			maxJournalLag = parsed
		}
	}

	status, err := h.healthStatus.Status(maxJournalLag)
	if err != nil {
		return err
	}

	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	return utils.WriteJSON(w, status)
}

func (h *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("health").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetHealth))
}
