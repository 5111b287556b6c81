// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakemesh/linearpool/api/utils"
	"github.com/stakemesh/linearpool/eventdb"
)

// Events serves filtered queries over the journaled pool events.
type Events struct {
	db    *eventdb.EventDB
	limit uint64
}

func New(db *eventdb.EventDB, limit uint64) *Events {
	return &Events{
		db,
		limit,
	}
}

func (e *Events) handleFilter(w http.ResponseWriter, r *http.Request) error {
	var filter EventFilter
	if err := utils.ParseJSON(r.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}

	options := filter.Options
	if options == nil {
		// all events go to the response when the default limit fits,
		// otherwise the caller must page explicitly
		options = &eventdb.Options{Offset: 0, Limit: e.limit}
	} else if options.Limit > e.limit {
		return utils.Forbidden(errors.Errorf("options.limit exceeds the maximum allowed value of %d", e.limit))
	}

	found, err := e.db.Filter(r.Context(), &eventdb.EventFilter{
		Account: filter.Account,
		Types:   filter.Types,
		Range:   filter.Range,
		Options: options,
		Order:   filter.Order,
	})
	if err != nil {
		return err
	}

	res := make([]*FilteredEvent, 0, len(found))
	for _, ev := range found {
		res = append(res, convertEvent(ev))
	}
	return utils.WriteJSON(w, res)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("events_filter").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
	sub.Path("/").
		Methods(http.MethodPost).
		Name("events_filter").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
