package availability

import (
	"testing"
	"time"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExceptionFor(t *testing.T) {
	exceptions := []models.AvailabilityException{
		{ID: 1, StartDate: date(2026, 7, 1), EndDate: date(2026, 7, 14), Type: models.ExceptionUnavailable},
		{ID: 2, StartDate: date(2026, 8, 3), EndDate: date(2026, 8, 3), Type: models.ExceptionCustomHours},
	}

	tests := []struct {
		name   string
		day    time.Time
		wantID uint
	}{
		{"inside range", date(2026, 7, 7), 1},
		{"first day inclusive", date(2026, 7, 1), 1},
		{"last day inclusive", date(2026, 7, 14), 1},
		{"day after range", date(2026, 7, 15), 0},
		{"single day exception", date(2026, 8, 3), 2},
		{"no exception", date(2026, 9, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExceptionFor(tt.day, time.UTC, exceptions)
			if tt.wantID == 0 {
				if got != nil {
					t.Fatalf("ExceptionFor() = %+v, want nil", got)
				}
				return
			}
			if got == nil || got.ID != tt.wantID {
				t.Fatalf("ExceptionFor() = %+v, want ID %d", got, tt.wantID)
			}
		})
	}
}

func TestBlocksBooking(t *testing.T) {
	day := date(2026, 7, 7)
	at := func(h, d int) (time.Time, time.Time) {
		start := day.Add(time.Duration(h) * time.Hour)
		return start, start.Add(time.Duration(d) * time.Minute)
	}

	unavailable := &models.AvailabilityException{Type: models.ExceptionUnavailable}
	customHours := &models.AvailabilityException{
		Type: models.ExceptionCustomHours,
		TimeBlocks: models.TimeBlockList{
			{StartTime: "10:00", EndTime: "14:00", Type: models.BlockAvailable},
		},
	}

	start, end := at(11, 60)
	if BlocksBooking(nil, start, end, time.UTC) {
		t.Error("nil exception must not block")
	}
	if !BlocksBooking(unavailable, start, end, time.UTC) {
		t.Error("UNAVAILABLE day must block everything")
	}
	if BlocksBooking(customHours, start, end, time.UTC) {
		t.Error("booking inside custom hours must pass")
	}

	start, end = at(9, 60)
	if !BlocksBooking(customHours, start, end, time.UTC) {
		t.Error("booking before custom hours must block")
	}

	// Straddling the custom window's end is out.
	start, end = at(13, 90)
	if !BlocksBooking(customHours, start, end, time.UTC) {
		t.Error("booking spilling past custom hours must block")
	}
}
