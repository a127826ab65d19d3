package availability

import (
	"context"
	"testing"
	"time"

	availdomain "github.com/abdur-rahman-shawl/youngminds-sessions/internal/domain/availability"
	domain "github.com/abdur-rahman-shawl/youngminds-sessions/internal/domain/session"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

// fakeRepo stubs only the read methods the resolver touches; anything
// else panics through the embedded nil interface.
type fakeRepo struct {
	domain.Repository

	schedule   *models.AvailabilitySchedule
	patterns   []models.WeeklyPattern
	exceptions []models.AvailabilityException
	sessions   []models.Session
}

func (r *fakeRepo) GetScheduleByMentor(_ context.Context, mentorID uint) (*models.AvailabilitySchedule, error) {
	return r.schedule, nil
}

func (r *fakeRepo) ListPatterns(_ context.Context, scheduleID uint) ([]models.WeeklyPattern, error) {
	return r.patterns, nil
}

func (r *fakeRepo) ListExceptions(_ context.Context, scheduleID uint, from, to time.Time) ([]models.AvailabilityException, error) {
	return r.exceptions, nil
}

func (r *fakeRepo) ListScheduledBetween(_ context.Context, mentorID uint, from, to time.Time) ([]models.Session, error) {
	return r.sessions, nil
}

// monday is a Monday far enough out that no tick is filtered as past.
var monday = time.Date(2027, 6, 7, 0, 0, 0, 0, time.UTC)

// fixture: Mondays 09:00-12:00 UTC, 60-minute grid, no buffer.
func newFixture() *fakeRepo {
	return &fakeRepo{
		schedule: &models.AvailabilitySchedule{
			ID: 10, MentorID: 1, Timezone: "UTC",
			DefaultSessionMinutes: 60, BufferMinutes: 0,
			IsActive: true,
		},
		patterns: []models.WeeklyPattern{{
			ScheduleID: 10, DayOfWeek: 1, Enabled: true,
			TimeBlocks: models.TimeBlockList{
				{StartTime: "09:00", EndTime: "12:00", Type: models.BlockAvailable},
			},
		}},
	}
}

func starts(slots []availdomain.Slot) []int {
	var out []int
	for _, s := range slots {
		out = append(out, s.StartAt.Hour())
	}
	return out
}

func TestResolveSlotsOpenDay(t *testing.T) {
	repo := newFixture()
	uc := NewResolveSlots(repo)

	slots, err := uc.Execute(context.Background(), 1, monday, monday)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3 (09, 10, 11): %v", len(slots), starts(slots))
	}
	for i, wantHour := range []int{9, 10, 11} {
		if slots[i].StartAt.Hour() != wantHour {
			t.Errorf("slot %d starts at %d, want %d", i, slots[i].StartAt.Hour(), wantHour)
		}
		if !slots[i].Available || slots[i].Reason != "" {
			t.Errorf("slot %d = %+v, want available", i, slots[i])
		}
		if slots[i].EndAt.Sub(slots[i].StartAt) != time.Hour {
			t.Errorf("slot %d span = %v, want 1h", i, slots[i].EndAt.Sub(slots[i].StartAt))
		}
	}
}

func TestResolveSlotsMarksBooked(t *testing.T) {
	repo := newFixture()
	repo.sessions = []models.Session{{
		MentorID: 1, ScheduledAt: monday.Add(10 * time.Hour),
		DurationMinutes: 60, Status: string(domain.StatusScheduled),
	}}
	uc := NewResolveSlots(repo)

	slots, err := uc.Execute(context.Background(), 1, monday, monday)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(slots))
	}

	wantAvail := []bool{true, false, true}
	for i, want := range wantAvail {
		if slots[i].Available != want {
			t.Errorf("slot %d available = %v, want %v", i, slots[i].Available, want)
		}
	}
	if slots[1].Reason != availdomain.SlotReasonBooked {
		t.Errorf("slot 1 reason = %q, want %q", slots[1].Reason, availdomain.SlotReasonBooked)
	}

	// Booked slots are returned, not hidden.
	for _, s := range slots {
		if s.Available && domain.FirstConflict(s.StartAt, s.EndAt, repo.sessions, 0) != nil {
			t.Errorf("slot %v reported available but conflicts", s.StartAt)
		}
	}
}

func TestResolveSlotsBufferSpreads(t *testing.T) {
	repo := newFixture()
	repo.schedule.BufferMinutes = 15
	repo.sessions = []models.Session{{
		MentorID: 1, ScheduledAt: monday.Add(10 * time.Hour),
		DurationMinutes: 60, Status: string(domain.StatusScheduled),
	}}
	uc := NewResolveSlots(repo)

	slots, err := uc.Execute(context.Background(), 1, monday, monday)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// 09:45-11:15 buffered: every neighboring tick collides.
	for i, s := range slots {
		if s.Available {
			t.Errorf("slot %d (%v) available despite buffer", i, s.StartAt)
		}
	}
}

func TestResolveSlotsCancelledSessionFreesSlot(t *testing.T) {
	repo := newFixture()
	repo.sessions = []models.Session{{
		MentorID: 1, ScheduledAt: monday.Add(10 * time.Hour),
		DurationMinutes: 60, Status: string(domain.StatusCancelled),
	}}
	uc := NewResolveSlots(repo)

	slots, err := uc.Execute(context.Background(), 1, monday, monday)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for i, s := range slots {
		if !s.Available {
			t.Errorf("slot %d blocked by a cancelled session", i)
		}
	}
}

func TestResolveSlotsUnavailableException(t *testing.T) {
	repo := newFixture()
	repo.exceptions = []models.AvailabilityException{{
		StartDate: monday, EndDate: monday, Type: models.ExceptionUnavailable,
	}}
	uc := NewResolveSlots(repo)

	slots, err := uc.Execute(context.Background(), 1, monday, monday)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("got %d slots, want the closed grid returned", len(slots))
	}
	for i, s := range slots {
		if s.Available || s.Reason != availdomain.SlotReasonClosed {
			t.Errorf("slot %d = %+v, want closed", i, s)
		}
	}
}

func TestResolveSlotsCustomHoursReplaceThePattern(t *testing.T) {
	repo := newFixture()
	repo.exceptions = []models.AvailabilityException{{
		StartDate: monday, EndDate: monday, Type: models.ExceptionCustomHours,
		TimeBlocks: models.TimeBlockList{
			{StartTime: "14:00", EndTime: "16:00", Type: models.BlockAvailable},
		},
	}}
	uc := NewResolveSlots(repo)

	slots, err := uc.Execute(context.Background(), 1, monday, monday)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	got := starts(slots)
	if len(got) != 2 || got[0] != 14 || got[1] != 15 {
		t.Fatalf("slots = %v, want [14 15]", got)
	}
}

func TestResolveSlotsSkipsDisabledDays(t *testing.T) {
	repo := newFixture()
	uc := NewResolveSlots(repo)

	// Monday through Wednesday; only Monday has a pattern.
	slots, err := uc.Execute(context.Background(), 1, monday, monday.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, s := range slots {
		if s.StartAt.Weekday() != time.Monday {
			t.Errorf("slot on %v, want Monday only", s.StartAt.Weekday())
		}
	}
	if len(slots) != 3 {
		t.Errorf("got %d slots, want 3", len(slots))
	}
}
