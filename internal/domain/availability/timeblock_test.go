package availability

import (
	"testing"
	"time"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httperr"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

func TestIsHHMM(t *testing.T) {
	valid := []string{"00:00", "09:30", "9:30", "23:59", "13:05"}
	invalid := []string{"", "24:00", "12:60", "12:5", "noon", "12-30", "12:30:00"}

	for _, s := range valid {
		if !IsHHMM(s) {
			t.Errorf("IsHHMM(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsHHMM(s) {
			t.Errorf("IsHHMM(%q) = true, want false", s)
		}
	}
}

func TestMinuteOfDay(t *testing.T) {
	got, err := MinuteOfDay("09:30")
	if err != nil {
		t.Fatalf("MinuteOfDay() error = %v", err)
	}
	if got != 570 {
		t.Errorf("MinuteOfDay(09:30) = %d, want 570", got)
	}

	if _, err := MinuteOfDay("25:00"); err == nil {
		t.Error("MinuteOfDay(25:00) accepted an invalid hour")
	}
}

func TestBlockWindow(t *testing.T) {
	w, err := BlockWindow(models.TimeBlock{StartTime: "09:00", EndTime: "12:00", Type: models.BlockAvailable})
	if err != nil {
		t.Fatalf("BlockWindow() error = %v", err)
	}
	if w.Start != 540 || w.End != 720 {
		t.Errorf("window = %+v, want 540-720", w)
	}

	if _, err := BlockWindow(models.TimeBlock{StartTime: "12:00", EndTime: "09:00", Type: models.BlockAvailable}); err == nil {
		t.Error("inverted block accepted")
	}
	if _, err := BlockWindow(models.TimeBlock{StartTime: "12:00", EndTime: "12:00", Type: models.BlockAvailable}); err == nil {
		t.Error("empty block accepted")
	}
}

func TestWindowOnDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	day := time.Date(2026, 4, 6, 0, 0, 0, 0, loc)

	start, end := Window{Start: 540, End: 600}.OnDate(day, loc)
	if start.Hour() != 9 || start.Location() != loc {
		t.Errorf("start = %v, want 09:00 in %v", start, loc)
	}
	if end.Sub(start) != time.Hour {
		t.Errorf("span = %v, want 1h", end.Sub(start))
	}
}

func TestValidateBlocks(t *testing.T) {
	tests := []struct {
		name     string
		blocks   models.TimeBlockList
		wantCode string
	}{
		{
			"disjoint blocks pass",
			models.TimeBlockList{
				{StartTime: "09:00", EndTime: "12:00", Type: models.BlockAvailable},
				{StartTime: "13:00", EndTime: "17:00", Type: models.BlockAvailable},
			},
			"",
		},
		{
			"back to back blocks pass",
			models.TimeBlockList{
				{StartTime: "09:00", EndTime: "12:00", Type: models.BlockAvailable},
				{StartTime: "12:00", EndTime: "14:00", Type: models.BlockAvailable},
			},
			"",
		},
		{
			"overlapping available blocks rejected",
			models.TimeBlockList{
				{StartTime: "09:00", EndTime: "12:00", Type: models.BlockAvailable},
				{StartTime: "11:00", EndTime: "14:00", Type: models.BlockAvailable},
			},
			"overlapping_time_blocks",
		},
		{
			"break overlapping available is fine",
			models.TimeBlockList{
				{StartTime: "09:00", EndTime: "17:00", Type: models.BlockAvailable},
				{StartTime: "12:00", EndTime: "13:00", Type: models.BlockBreak},
			},
			"",
		},
		{
			"malformed time rejected",
			models.TimeBlockList{
				{StartTime: "9am", EndTime: "12:00", Type: models.BlockAvailable},
			},
			"invalid_time_block",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBlocks(tt.blocks)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ValidateBlocks() error = %v, want nil", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tt.wantCode) {
				t.Fatalf("ValidateBlocks() error = %v, want code %q", err, tt.wantCode)
			}
		})
	}
}

func TestValidatePatterns(t *testing.T) {
	blocks := models.TimeBlockList{{StartTime: "09:00", EndTime: "17:00", Type: models.BlockAvailable}}

	err := ValidatePatterns([]models.WeeklyPattern{
		{DayOfWeek: 1, Enabled: true, TimeBlocks: blocks},
		{DayOfWeek: 1, Enabled: true, TimeBlocks: blocks},
	})
	if !httperr.IsBusiness(err, "duplicate_day_of_week") {
		t.Errorf("duplicate day: error = %v", err)
	}

	err = ValidatePatterns([]models.WeeklyPattern{{DayOfWeek: 7, TimeBlocks: blocks}})
	if !httperr.IsBusiness(err, "invalid_day_of_week") {
		t.Errorf("day out of range: error = %v", err)
	}

	if err := ValidatePatterns([]models.WeeklyPattern{
		{DayOfWeek: 1, Enabled: true, TimeBlocks: blocks},
		{DayOfWeek: 3, Enabled: false},
	}); err != nil {
		t.Errorf("valid patterns: error = %v", err)
	}
}

func TestAvailableWindowsSortsAndFilters(t *testing.T) {
	blocks := models.TimeBlockList{
		{StartTime: "13:00", EndTime: "17:00", Type: models.BlockAvailable},
		{StartTime: "12:00", EndTime: "13:00", Type: models.BlockBreak},
		{StartTime: "09:00", EndTime: "12:00", Type: models.BlockAvailable},
	}
	windows := AvailableWindows(blocks)
	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	if windows[0].Start != 540 || windows[1].Start != 780 {
		t.Errorf("windows not sorted by start: %+v", windows)
	}
}
