// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"strings"

	"github.com/stakemesh/linearpool/metrics"
)

var (
	metricEventsLogged         = metrics.LazyLoadCounterVec("eventdb_logged_count", []string{"type"})
	metricEventQueryParameters = metrics.LazyLoadCounterVec("eventdb_query_parameters", []string{"parameters"})
)

func metricsHandleEventsFilter(filter *EventFilter) {
	if metrics.NoOp() {
		return
	}

	var parameters []string
	if filter.Account != nil {
		parameters = append(parameters, "account")
	}
	if len(filter.Types) > 0 {
		parameters = append(parameters, "types")
	}
	if filter.Range != nil {
		parameters = append(parameters, "range")
	}
	if filter.Options != nil {
		parameters = append(parameters, "options")
	}
	if len(parameters) == 0 {
		parameters = append(parameters, "none")
	}
	metricEventQueryParameters().AddWithLabel(1, map[string]string{"parameters": strings.Join(parameters, ",")})
}
