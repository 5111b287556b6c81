// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/stakemesh/linearpool/metrics"
)

var (
	metricDepositCount       = metrics.LazyLoadCounter("pool_deposit_count")
	metricWithdrawCount      = metrics.LazyLoadCounter("pool_withdraw_count")
	metricEmergencyCount     = metrics.LazyLoadCounter("pool_emergency_withdraw_count")
	metricRewardsPaidCount   = metrics.LazyLoadCounter("pool_rewards_paid_count")
	metricOpErrorCount       = metrics.LazyLoadCounterVec("pool_op_error_count", []string{"kind"})
	metricTotalStakedGauge   = metrics.LazyLoadGauge("pool_total_staked")
	metricOpDurationMsBucket = metrics.LazyLoadHistogramVec("pool_op_duration_ms", []string{"op"}, metrics.Bucket10s)
)

func countOpError(err error) {
	if err == nil {
		return
	}
	metricOpErrorCount().AddWithLabel(1, map[string]string{"kind": ErrKind(err).String()})
}
