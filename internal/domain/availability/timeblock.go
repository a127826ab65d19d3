package availability

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httperr"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

var hhmmRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// IsHHMM reports whether s is a 24h wall-clock "HH:MM" string.
func IsHHMM(s string) bool {
	return hhmmRe.MatchString(s)
}

// MinuteOfDay parses "HH:MM" into minutes since midnight.
func MinuteOfDay(hm string) (int, error) {
	if !IsHHMM(hm) {
		return 0, fmt.Errorf("invalid time of day %q", hm)
	}
	parts := strings.SplitN(hm, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m, nil
}

// Window is a half-open [Start, End) interval in minutes since midnight.
type Window struct {
	Start int
	End   int
}

func (w Window) Minutes() int { return w.End - w.Start }

// OnDate materializes the window onto a calendar day in loc.
func (w Window) OnDate(day time.Time, loc *time.Location) (time.Time, time.Time) {
	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	return base.Add(time.Duration(w.Start) * time.Minute),
		base.Add(time.Duration(w.End) * time.Minute)
}

// BlockWindow converts a TimeBlock's wall-clock bounds into a Window.
func BlockWindow(b models.TimeBlock) (Window, error) {
	start, err := MinuteOfDay(b.StartTime)
	if err != nil {
		return Window{}, err
	}
	end, err := MinuteOfDay(b.EndTime)
	if err != nil {
		return Window{}, err
	}
	if start >= end {
		return Window{}, fmt.Errorf("time block %s-%s is empty or inverted", b.StartTime, b.EndTime)
	}
	return Window{Start: start, End: end}, nil
}

// AvailableWindows returns the AVAILABLE windows of blocks, sorted by start.
// Blocks that fail to parse are skipped; write paths reject them up front.
func AvailableWindows(blocks models.TimeBlockList) []Window {
	var windows []Window
	for _, b := range blocks {
		if b.Type != models.BlockAvailable {
			continue
		}
		w, err := BlockWindow(b)
		if err != nil {
			continue
		}
		windows = append(windows, w)
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].Start < windows[j].Start })
	return windows
}

// ValidateBlocks enforces the single-day invariant: every block parses and
// AVAILABLE blocks do not overlap each other.
func ValidateBlocks(blocks models.TimeBlockList) error {
	var available []Window
	for _, b := range blocks {
		w, err := BlockWindow(b)
		if err != nil {
			return httperr.ErrBusinessDetail("invalid_time_block", err.Error())
		}
		if b.Type == models.BlockAvailable {
			available = append(available, w)
		}
	}

	sort.Slice(available, func(i, j int) bool { return available[i].Start < available[j].Start })
	for i := 1; i < len(available); i++ {
		if available[i].Start < available[i-1].End {
			return httperr.ErrBusiness("overlapping_time_blocks")
		}
	}
	return nil
}

// ValidatePatterns enforces the full-payload invariant before any write:
// weekdays in range, no duplicate weekday, every day's blocks valid.
func ValidatePatterns(patterns []models.WeeklyPattern) error {
	seen := make(map[int]bool, len(patterns))
	for _, p := range patterns {
		if p.DayOfWeek < 0 || p.DayOfWeek > 6 {
			return httperr.ErrBusiness("invalid_day_of_week")
		}
		if seen[p.DayOfWeek] {
			return httperr.ErrBusiness("duplicate_day_of_week")
		}
		seen[p.DayOfWeek] = true

		if err := ValidateBlocks(p.TimeBlocks); err != nil {
			return err
		}
	}
	return nil
}
