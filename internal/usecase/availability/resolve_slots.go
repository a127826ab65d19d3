package availability

import (
	"context"
	"time"

	availdomain "github.com/abdur-rahman-shawl/youngminds-sessions/internal/domain/availability"
	domain "github.com/abdur-rahman-shawl/youngminds-sessions/internal/domain/session"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httperr"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

type ResolveSlots struct {
	repo domain.Repository
}

func NewResolveSlots(repo domain.Repository) *ResolveSlots {
	return &ResolveSlots{repo: repo}
}

// Execute projects the weekly pattern, exceptions, and existing bookings
// into the bookable grid for [from, to] (calendar days, mentor timezone).
// Booked and exception-closed ticks are returned unavailable rather than
// omitted; disabled weekdays yield nothing at all.
func (uc *ResolveSlots) Execute(
	ctx context.Context,
	mentorID uint,
	from time.Time,
	to time.Time,
) ([]availdomain.Slot, error) {

	sched, err := uc.repo.GetScheduleByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if !sched.IsActive {
		return nil, httperr.ErrBusiness("schedule_not_found")
	}

	loc, err := time.LoadLocation(sched.Timezone)
	if err != nil {
		loc = time.UTC
	}

	patterns, err := uc.repo.ListPatterns(ctx, sched.ID)
	if err != nil {
		return nil, err
	}
	byDay := make(map[int]*models.WeeklyPattern, len(patterns))
	for i := range patterns {
		byDay[patterns[i].DayOfWeek] = &patterns[i]
	}

	firstDay := startOfDay(from.In(loc))
	lastDay := startOfDay(to.In(loc))

	exceptions, err := uc.repo.ListExceptions(ctx, sched.ID, firstDay, lastDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	// Pad the session window by a day each side so buffer-expanded
	// bookings straddling midnight still count.
	sessions, err := uc.repo.ListScheduledBetween(
		ctx, mentorID,
		firstDay.AddDate(0, 0, -1),
		lastDay.AddDate(0, 0, 2),
	)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(sched.DefaultSessionMinutes) * time.Minute
	now := time.Now().In(loc)

	var slots []availdomain.Slot

	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		pattern := byDay[int(day.Weekday())]
		if pattern == nil || !pattern.Enabled {
			continue
		}

		blocks := pattern.TimeBlocks
		dayClosed := false

		if exc := availdomain.ExceptionFor(day, loc, exceptions); exc != nil {
			if len(exc.TimeBlocks) > 0 {
				blocks = exc.TimeBlocks
			} else if exc.Type == models.ExceptionUnavailable {
				dayClosed = true
			}
		}

		for _, w := range availdomain.AvailableWindows(blocks) {
			ws, we := w.OnDate(day, loc)
			for tick := ws; !tick.Add(duration).After(we); tick = tick.Add(duration) {
				if tick.Before(now) {
					continue
				}

				slot := availdomain.Slot{
					StartAt:   tick,
					EndAt:     tick.Add(duration),
					Available: true,
				}
				if dayClosed {
					slot.Available = false
					slot.Reason = availdomain.SlotReasonClosed
				} else if domain.FirstConflict(tick, tick.Add(duration), sessions, sched.BufferMinutes) != nil {
					slot.Available = false
					slot.Reason = availdomain.SlotReasonBooked
				}

				slots = append(slots, slot)
			}
		}
	}

	return slots, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
