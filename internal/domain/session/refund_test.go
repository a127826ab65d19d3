package session

import (
	"testing"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/policy"
)

func defaultPolicy() policy.Snapshot {
	return policy.ParseSnapshot(nil)
}

func TestRefundPercent(t *testing.T) {
	p := defaultPolicy()

	tests := []struct {
		name     string
		isMentor bool
		hours    float64
		want     int
	}{
		{"mentor always full refund", true, 1, 100},
		{"mentor full refund even past start", true, -2, 100},
		{"mentee well in advance", false, 72, 100},
		{"mentee exactly at free window", false, 48, 100},
		{"mentee between free and cutoff", false, 30, 50},
		{"mentee exactly at cutoff", false, 24, 50},
		{"mentee inside cutoff", false, 10, 0},
		{"mentee at session start", false, 0, 0},
		{"mentee after session start", false, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RefundPercent(tt.isMentor, tt.hours, p)
			if got != tt.want {
				t.Errorf("RefundPercent(%v, %v) = %d, want %d", tt.isMentor, tt.hours, got, tt.want)
			}
		})
	}
}

// More lead time never yields a smaller refund.
func TestRefundPercentMonotonic(t *testing.T) {
	p := defaultPolicy()

	prev := -1
	for hours := -4.0; hours <= 96; hours += 0.5 {
		got := RefundPercent(false, hours, p)
		if got < prev {
			t.Fatalf("refund dropped from %d to %d at %.1f hours lead", prev, got, hours)
		}
		if got < 0 || got > 100 {
			t.Fatalf("refund %d out of range at %.1f hours lead", got, hours)
		}
		prev = got
	}
}

func TestRefundPercentClampsPolicyValues(t *testing.T) {
	p := defaultPolicy()
	p.PartialRefundPercentage = 150
	if got := RefundPercent(false, 30, p); got != 100 {
		t.Errorf("partial refund not clamped, got %d", got)
	}
	p.LateCancellationRefund = -10
	if got := RefundPercent(false, 5, p); got != 0 {
		t.Errorf("late refund not clamped, got %d", got)
	}
}

func TestRefundAmount(t *testing.T) {
	tests := []struct {
		rate    string
		percent int
		want    string
	}{
		{"120.00", 100, "120.00"},
		{"120.00", 50, "60.00"},
		{"99.99", 50, "50.00"},
		{"75.50", 0, "0.00"},
		{"0", 100, "0.00"},
		{"33.33", 33, "11.00"},
	}
	for _, tt := range tests {
		got, err := RefundAmount(tt.rate, tt.percent)
		if err != nil {
			t.Fatalf("RefundAmount(%q, %d) error = %v", tt.rate, tt.percent, err)
		}
		if got != tt.want {
			t.Errorf("RefundAmount(%q, %d) = %q, want %q", tt.rate, tt.percent, got, tt.want)
		}
	}

	if _, err := RefundAmount("not-a-number", 50); err == nil {
		t.Error("RefundAmount accepted a malformed rate")
	}
}

func TestRefundStatusFor(t *testing.T) {
	if got := RefundStatusFor("60.00"); got != RefundStatusPending {
		t.Errorf("positive amount: got %q, want %q", got, RefundStatusPending)
	}
	if got := RefundStatusFor("0.00"); got != RefundStatusNone {
		t.Errorf("zero amount: got %q, want %q", got, RefundStatusNone)
	}
	if got := RefundStatusFor("garbage"); got != RefundStatusNone {
		t.Errorf("malformed amount: got %q, want %q", got, RefundStatusNone)
	}
}
