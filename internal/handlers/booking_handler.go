package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httperr"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httpresp"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/middleware"
	ucSession "github.com/abdur-rahman-shawl/youngminds-sessions/internal/usecase/session"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	bookUC   *ucSession.BookSession
	cancelUC *ucSession.CancelSession
	listUC   *ucSession.ListSessions
}

func NewBookingHandler(
	bookUC *ucSession.BookSession,
	cancelUC *ucSession.CancelSession,
	listUC *ucSession.ListSessions,
) *BookingHandler {
	return &BookingHandler{
		bookUC:   bookUC,
		cancelUC: cancelUC,
		listUC:   listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	MentorID        uint   `json:"mentor_id" binding:"required"`
	Title           string `json:"title" binding:"required,max=200"`
	Description     string `json:"description" binding:"max=1000"`
	ScheduledAt     string `json:"scheduled_at" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=15,max=480"`
	MeetingType     string `json:"meeting_type" binding:"required,oneof=video in_person phone"`
	Location        string `json:"location" binding:"max=255"`
}

type CancelBookingRequest struct {
	ReasonCategory string `json:"reason_category" binding:"required"`
	ReasonDetails  string `json:"reason_details" binding:"max=500"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	menteeID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	scheduledAt, err := parseInstant(req.ScheduledAt)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "scheduled_at must be RFC3339")
		return
	}

	created, err := h.bookUC.Execute(c.Request.Context(), ucSession.BookSessionInput{
		MentorID:        req.MentorID,
		MenteeID:        menteeID,
		Title:           req.Title,
		Description:     req.Description,
		ScheduledAt:     scheduledAt,
		DurationMinutes: req.DurationMinutes,
		MeetingType:     req.MeetingType,
		Location:        req.Location,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)

	in := ucSession.ListSessionsInput{
		CallerID: callerID,
		Role:     c.Query("role"),
		Status:   c.Query("status"),
	}

	if raw := c.Query("mentorId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_mentor_id", "mentorId must be numeric")
			return
		}
		in.MentorID = uint(id)
	}
	if raw := c.Query("start"); raw != "" {
		t, err := parseInstant(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "start must be RFC3339")
			return
		}
		in.From = t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := parseInstant(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "end must be RFC3339")
			return
		}
		in.To = t
	}

	sessions, err := h.listUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, sessions)
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_session_id", "session id must be numeric")
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	result, err := h.cancelUC.Execute(c.Request.Context(), ucSession.CancelSessionInput{
		SessionID:      uint(sessionID),
		UserID:         userID,
		ReasonCategory: req.ReasonCategory,
		ReasonDetails:  req.ReasonDetails,
		IPAddress:      c.ClientIP(),
		UserAgent:      c.Request.UserAgent(),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, result)
}
