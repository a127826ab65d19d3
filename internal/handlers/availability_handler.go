package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	availdomain "github.com/abdur-rahman-shawl/youngminds-sessions/internal/domain/availability"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httperr"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httpresp"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/middleware"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/timezone"
	ucAvailability "github.com/abdur-rahman-shawl/youngminds-sessions/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	db      *gorm.DB
	slotsUC *ucAvailability.ResolveSlots
}

func NewAvailabilityHandler(db *gorm.DB, slotsUC *ucAvailability.ResolveSlots) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, slotsUC: slotsUC}
}

// ======================================================
// REQUESTS
// ======================================================

type WeeklyPatternInput struct {
	DayOfWeek  int                  `json:"day_of_week" binding:"min=0,max=6"`
	Enabled    bool                 `json:"enabled"`
	TimeBlocks models.TimeBlockList `json:"time_blocks"`
}

type UpdateAvailabilityRequest struct {
	Timezone string `json:"timezone"`

	DefaultSessionMinutes  int `json:"default_session_minutes" binding:"omitempty,min=15,max=480"`
	BufferMinutes          int `json:"buffer_minutes" binding:"min=0,max=120"`
	MinAdvanceBookingHours int `json:"min_advance_booking_hours" binding:"min=0,max=720"`
	MaxAdvanceBookingDays  int `json:"max_advance_booking_days" binding:"omitempty,min=1,max=365"`

	InstantBooking      bool `json:"instant_booking"`
	RequireConfirmation bool `json:"require_confirmation"`
	IsActive            bool `json:"is_active"`

	WeeklyPatterns []WeeklyPatternInput `json:"weekly_patterns" binding:"required,max=7"`
}

type ExceptionInput struct {
	StartDate  string               `json:"start_date" binding:"required"`
	EndDate    string               `json:"end_date" binding:"required"`
	Type       string               `json:"type" binding:"required,oneof=UNAVAILABLE CUSTOM_HOURS"`
	Reason     string               `json:"reason" binding:"max=255"`
	TimeBlocks models.TimeBlockList `json:"time_blocks"`
}

type ReplaceExceptionsRequest struct {
	Exceptions []ExceptionInput `json:"exceptions" binding:"required,max=100"`
}

// ======================================================
// GET SCHEDULE
// ======================================================

func (h *AvailabilityHandler) Get(c *gin.Context) {
	mentorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_mentor_id", "mentor id must be numeric")
		return
	}

	var sched models.AvailabilitySchedule
	err = h.db.WithContext(c.Request.Context()).
		Preload("WeeklyPatterns", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_of_week ASC")
		}).
		Where("mentor_id = ?", mentorID).
		First(&sched).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "schedule_not_found", "")
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, sched)
}

// ======================================================
// UPDATE SCHEDULE (atomic pattern replace)
// ======================================================

func (h *AvailabilityHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	mentorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_mentor_id", "mentor id must be numeric")
		return
	}
	if uint(mentorID) != userID {
		httperr.Forbidden(c, "not_schedule_owner", "only the mentor can edit their availability")
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Timezone == "" {
		req.Timezone = timezone.DefaultTimezone
	}
	if !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "unknown IANA timezone")
		return
	}

	patterns := make([]models.WeeklyPattern, 0, len(req.WeeklyPatterns))
	for _, p := range req.WeeklyPatterns {
		patterns = append(patterns, models.WeeklyPattern{
			DayOfWeek:  p.DayOfWeek,
			Enabled:    p.Enabled,
			TimeBlocks: p.TimeBlocks,
		})
	}
	if err := availdomain.ValidatePatterns(patterns); err != nil {
		httperr.Respond(c, err)
		return
	}

	var sched models.AvailabilitySchedule

	// Delete-then-insert inside one transaction so readers never see a
	// half-replaced week.
	txErr := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("mentor_id = ?", mentorID).First(&sched).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sched = models.AvailabilitySchedule{MentorID: uint(mentorID)}
		} else if err != nil {
			return err
		}

		sched.Timezone = req.Timezone
		if req.DefaultSessionMinutes > 0 {
			sched.DefaultSessionMinutes = req.DefaultSessionMinutes
		}
		sched.BufferMinutes = req.BufferMinutes
		sched.MinAdvanceBookingHours = req.MinAdvanceBookingHours
		if req.MaxAdvanceBookingDays > 0 {
			sched.MaxAdvanceBookingDays = req.MaxAdvanceBookingDays
		}
		sched.InstantBooking = req.InstantBooking
		sched.RequireConfirmation = req.RequireConfirmation
		sched.IsActive = req.IsActive

		if err := tx.Save(&sched).Error; err != nil {
			return err
		}

		if err := tx.Where("schedule_id = ?", sched.ID).
			Delete(&models.WeeklyPattern{}).Error; err != nil {
			return err
		}
		for i := range patterns {
			patterns[i].ScheduleID = sched.ID
		}
		if len(patterns) > 0 {
			if err := tx.Create(&patterns).Error; err != nil {
				return err
			}
		}
		sched.WeeklyPatterns = patterns
		return nil
	})
	if txErr != nil {
		httperr.Respond(c, txErr)
		return
	}

	httpresp.OK(c, sched)
}

// ======================================================
// EXCEPTIONS
// ======================================================

func (h *AvailabilityHandler) ListExceptions(c *gin.Context) {
	mentorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_mentor_id", "mentor id must be numeric")
		return
	}

	sched, ok := h.findSchedule(c, uint(mentorID))
	if !ok {
		return
	}

	var exceptions []models.AvailabilityException
	if err := h.db.WithContext(c.Request.Context()).
		Where("schedule_id = ?", sched.ID).
		Order("start_date ASC").
		Find(&exceptions).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, exceptions)
}

func (h *AvailabilityHandler) ReplaceExceptions(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	mentorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_mentor_id", "mentor id must be numeric")
		return
	}
	if uint(mentorID) != userID {
		httperr.Forbidden(c, "not_schedule_owner", "only the mentor can edit their availability")
		return
	}

	var req ReplaceExceptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	sched, ok := h.findSchedule(c, uint(mentorID))
	if !ok {
		return
	}

	exceptions := make([]models.AvailabilityException, 0, len(req.Exceptions))
	for _, in := range req.Exceptions {
		start, err := parseDate(in.StartDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "start_date must be YYYY-MM-DD")
			return
		}
		end, err := parseDate(in.EndDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "end_date must be YYYY-MM-DD")
			return
		}
		if end.Before(start) {
			httperr.BadRequest(c, "invalid_date_range", "end_date before start_date")
			return
		}
		if in.Type == models.ExceptionCustomHours {
			if len(in.TimeBlocks) == 0 {
				httperr.BadRequest(c, "invalid_time_block", "CUSTOM_HOURS requires time_blocks")
				return
			}
			if err := availdomain.ValidateBlocks(in.TimeBlocks); err != nil {
				httperr.Respond(c, err)
				return
			}
		}
		exceptions = append(exceptions, models.AvailabilityException{
			ScheduleID: sched.ID,
			StartDate:  start,
			EndDate:    end,
			Type:       in.Type,
			Reason:     in.Reason,
			TimeBlocks: in.TimeBlocks,
		})
	}

	txErr := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", sched.ID).
			Delete(&models.AvailabilityException{}).Error; err != nil {
			return err
		}
		if len(exceptions) > 0 {
			return tx.Create(&exceptions).Error
		}
		return nil
	})
	if txErr != nil {
		httperr.Respond(c, txErr)
		return
	}

	httpresp.List(c, exceptions)
}

// ======================================================
// SLOTS
// ======================================================

func (h *AvailabilityHandler) Slots(c *gin.Context) {
	mentorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_mentor_id", "mentor id must be numeric")
		return
	}

	from := time.Now().UTC()
	if raw := c.Query("start"); raw != "" {
		from, err = parseDate(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "start must be YYYY-MM-DD")
			return
		}
	}
	to := from.AddDate(0, 0, 6)
	if raw := c.Query("end"); raw != "" {
		to, err = parseDate(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "end must be YYYY-MM-DD")
			return
		}
	}
	if to.Before(from) {
		httperr.BadRequest(c, "invalid_date_range", "end before start")
		return
	}
	if to.Sub(from) > 31*24*time.Hour {
		httperr.BadRequest(c, "invalid_date_range", "window larger than 31 days")
		return
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), uint(mentorID), from, to)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ------------------------------------------------------

func (h *AvailabilityHandler) findSchedule(c *gin.Context, mentorID uint) (*models.AvailabilitySchedule, bool) {
	var sched models.AvailabilitySchedule
	err := h.db.WithContext(c.Request.Context()).
		Where("mentor_id = ?", mentorID).
		First(&sched).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "schedule_not_found", "")
		return nil, false
	}
	if err != nil {
		httperr.Respond(c, err)
		return nil, false
	}
	return &sched, true
}
