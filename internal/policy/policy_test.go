package policy

import "testing"

func TestParseSnapshotDefaults(t *testing.T) {
	s := ParseSnapshot(nil)

	if s.FreeCancellationHours != 48 {
		t.Errorf("FreeCancellationHours = %d, want 48", s.FreeCancellationHours)
	}
	if s.CancellationCutoffHours != 24 {
		t.Errorf("CancellationCutoffHours = %d, want 24", s.CancellationCutoffHours)
	}
	if s.MentorCancellationCutoffHours != 12 {
		t.Errorf("MentorCancellationCutoffHours = %d, want 12", s.MentorCancellationCutoffHours)
	}
	if s.PartialRefundPercentage != 50 {
		t.Errorf("PartialRefundPercentage = %d, want 50", s.PartialRefundPercentage)
	}
	if s.LateCancellationRefund != 0 {
		t.Errorf("LateCancellationRefund = %d, want 0", s.LateCancellationRefund)
	}
	if s.RescheduleRequestExpiryHours != 48 {
		t.Errorf("RescheduleRequestExpiryHours = %d, want 48", s.RescheduleRequestExpiryHours)
	}
	if s.MaxCounterProposals != 2 {
		t.Errorf("MaxCounterProposals = %d, want 2", s.MaxCounterProposals)
	}
}

func TestParseSnapshotOverridesAndFallback(t *testing.T) {
	s := ParseSnapshot(map[string]string{
		KeyFreeCancellationHours:   "72",
		KeyPartialRefundPercentage: "not-a-number",
	})

	if s.FreeCancellationHours != 72 {
		t.Errorf("override ignored: FreeCancellationHours = %d, want 72", s.FreeCancellationHours)
	}
	// Unparseable values fall back to the default, never to zero.
	if s.PartialRefundPercentage != 50 {
		t.Errorf("bad value fallback: PartialRefundPercentage = %d, want 50", s.PartialRefundPercentage)
	}
	if s.MaxCounterProposals != 2 {
		t.Errorf("absent key fallback: MaxCounterProposals = %d, want 2", s.MaxCounterProposals)
	}
}
