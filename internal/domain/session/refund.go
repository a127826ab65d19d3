package session

import (
	"github.com/shopspring/decimal"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/policy"
)

const (
	RefundStatusNone    = "none"
	RefundStatusPending = "pending"
)

// RefundPercent maps (actor role, lead time, policy) to a refund
// percentage in [0,100]. Mentor-initiated cancellations always make the
// mentee whole; the mentor's side is handled by reassignment.
func RefundPercent(isMentor bool, hoursUntilSession float64, p policy.Snapshot) int {
	if isMentor {
		return 100
	}
	if hoursUntilSession <= 0 {
		return 0
	}
	if hoursUntilSession >= float64(p.FreeCancellationHours) {
		return 100
	}
	if hoursUntilSession >= float64(p.CancellationCutoffHours) {
		return clampPercent(p.PartialRefundPercentage)
	}
	return clampPercent(p.LateCancellationRefund)
}

// RefundAmount computes rate * percent / 100 rounded to 2 decimals,
// keeping money in decimal strings end to end.
func RefundAmount(rate string, percent int) (string, error) {
	r, err := decimal.NewFromString(rate)
	if err != nil {
		return "", err
	}
	amount := r.Mul(decimal.NewFromInt(int64(percent))).
		Div(decimal.NewFromInt(100)).
		Round(2)
	return amount.StringFixed(2), nil
}

// RefundStatusFor is "pending" only when money actually moves back.
func RefundStatusFor(amount string) string {
	a, err := decimal.NewFromString(amount)
	if err != nil || !a.IsPositive() {
		return RefundStatusNone
	}
	return RefundStatusPending
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
