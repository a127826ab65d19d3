package session

import (
	"testing"
	"time"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

func TestOverlapsBuffered(t *testing.T) {
	existing := &models.Session{
		ScheduledAt:     time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          string(StatusScheduled),
	}
	at := func(h, m int) time.Time {
		return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		buffer int
		want   bool
	}{
		{"identical interval", at(10, 0), at(11, 0), 0, true},
		{"contained interval", at(10, 15), at(10, 45), 0, true},
		{"partial overlap front", at(9, 30), at(10, 30), 0, true},
		{"partial overlap back", at(10, 30), at(11, 30), 0, true},
		{"back to back after, no buffer", at(11, 0), at(12, 0), 0, false},
		{"back to back before, no buffer", at(9, 0), at(10, 0), 0, false},
		{"back to back after, 15m buffer", at(11, 0), at(12, 0), 15, true},
		{"back to back before, 15m buffer", at(9, 0), at(10, 0), 15, true},
		{"clear of the buffer", at(11, 15), at(12, 15), 15, false},
		{"well apart", at(14, 0), at(15, 0), 30, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverlapsBuffered(tt.start, tt.end, existing, tt.buffer)
			if got != tt.want {
				t.Errorf("OverlapsBuffered(%v, %v, buffer %d) = %v, want %v",
					tt.start, tt.end, tt.buffer, got, tt.want)
			}
		})
	}
}

func TestFirstConflictSkipsInactive(t *testing.T) {
	at := func(h int) time.Time {
		return time.Date(2026, 3, 10, h, 0, 0, 0, time.UTC)
	}
	existing := []models.Session{
		{ID: 1, ScheduledAt: at(10), DurationMinutes: 60, Status: string(StatusCancelled)},
		{ID: 2, ScheduledAt: at(10), DurationMinutes: 60, Status: string(StatusCompleted)},
		{ID: 3, ScheduledAt: at(10), DurationMinutes: 60, Status: string(StatusScheduled)},
	}

	got := FirstConflict(at(10), at(11), existing, 0)
	if got == nil || got.ID != 3 {
		t.Fatalf("FirstConflict() = %+v, want session 3", got)
	}

	if got := FirstConflict(at(12), at(13), existing, 0); got != nil {
		t.Errorf("FirstConflict() on a free hour = %+v, want nil", got)
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		rate     string
		duration int
		want     string
	}{
		{"120.00", 60, "120.00"},
		{"120.00", 30, "60.00"},
		{"120.00", 90, "180.00"},
		{"100.00", 45, "75.00"},
		{"0", 60, "0.00"},
	}
	for _, tt := range tests {
		got, err := Price(tt.rate, tt.duration)
		if err != nil {
			t.Fatalf("Price(%q, %d) error = %v", tt.rate, tt.duration, err)
		}
		if got != tt.want {
			t.Errorf("Price(%q, %d) = %q, want %q", tt.rate, tt.duration, got, tt.want)
		}
	}

	if _, err := Price("free", 60); err == nil {
		t.Error("Price accepted a malformed rate")
	}
}

func TestReasonLabel(t *testing.T) {
	if _, ok := ReasonLabel(RoleMentor, "found_another_mentor"); ok {
		t.Error("mentee-only reason accepted for mentor")
	}
	if label, ok := ReasonLabel(RoleMentee, "found_another_mentor"); !ok || label != "Found another mentor" {
		t.Errorf("ReasonLabel(mentee) = %q, %v", label, ok)
	}
	if got := FormatReason("Illness", "flu"); got != "Illness: flu" {
		t.Errorf("FormatReason() = %q", got)
	}
	if got := FormatReason("Illness", ""); got != "Illness" {
		t.Errorf("FormatReason() without details = %q", got)
	}
}
