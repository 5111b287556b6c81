// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

// Constants of the reward accrual arithmetic.
const (
	// SecondsPerYear is the accrual year used by the APR formula.
	SecondsPerYear uint64 = 365 * 24 * 3600

	// PercentDenominator scales the integer APR numerator (apr=10 means 10%).
	PercentDenominator uint64 = 100
)
