package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httperr"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/middleware"
	ucSession "github.com/abdur-rahman-shawl/youngminds-sessions/internal/usecase/session"
)

// ======================================================
// HANDLER
// ======================================================

type RescheduleHandler struct {
	proposeUC *ucSession.ProposeReschedule
	respondUC *ucSession.RespondReschedule
}

func NewRescheduleHandler(
	proposeUC *ucSession.ProposeReschedule,
	respondUC *ucSession.RespondReschedule,
) *RescheduleHandler {
	return &RescheduleHandler{
		proposeUC: proposeUC,
		respondUC: respondUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ProposeRescheduleRequest struct {
	ProposedTime            string `json:"proposed_time" binding:"required"`
	ProposedDurationMinutes int    `json:"proposed_duration_minutes" binding:"omitempty,min=15,max=480"`
	Reason                  string `json:"reason" binding:"max=500"`
}

type RespondRescheduleRequest struct {
	Action              string `json:"action" binding:"required,oneof=accept reject counter_propose cancel_session"`
	CounterProposedTime string `json:"counter_proposed_time"`
	CancellationReason  string `json:"cancellation_reason" binding:"max=500"`
}

// ======================================================
// PROPOSE
// ======================================================

func (h *RescheduleHandler) Propose(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_session_id", "session id must be numeric")
		return
	}

	var req ProposeRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	proposedTime, err := parseInstant(req.ProposedTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "proposed_time must be RFC3339")
		return
	}

	created, err := h.proposeUC.Execute(c.Request.Context(), ucSession.ProposeRescheduleInput{
		SessionID:               uint(sessionID),
		UserID:                  userID,
		ProposedTime:            proposedTime,
		ProposedDurationMinutes: req.ProposedDurationMinutes,
		Reason:                  req.Reason,
		IPAddress:               c.ClientIP(),
		UserAgent:               c.Request.UserAgent(),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ======================================================
// RESPOND
// ======================================================

func (h *RescheduleHandler) Respond(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_session_id", "session id must be numeric")
		return
	}
	requestID, err := strconv.ParseUint(c.Param("requestId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request_id", "request id must be numeric")
		return
	}

	var req RespondRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var counterTime *time.Time
	if req.CounterProposedTime != "" {
		t, err := parseInstant(req.CounterProposedTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "counter_proposed_time must be RFC3339")
			return
		}
		counterTime = &t
	}

	result, err := h.respondUC.Execute(c.Request.Context(), ucSession.RespondRescheduleInput{
		SessionID:           uint(sessionID),
		RequestID:           uint(requestID),
		UserID:              userID,
		Action:              req.Action,
		CounterProposedTime: counterTime,
		CancellationReason:  req.CancellationReason,
		IPAddress:           c.ClientIP(),
		UserAgent:           c.Request.UserAgent(),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
