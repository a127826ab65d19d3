package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/abdur-rahman-shawl/youngminds-sessions/internal/domain/session"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httperr"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httpresp"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/middleware"
)

type AuditLogsHandler struct {
	repo domain.Repository
}

func NewAuditLogsHandler(repo domain.Repository) *AuditLogsHandler {
	return &AuditLogsHandler{repo: repo}
}

// List returns the audit trail of one session, newest first. Only the
// two parties of the session (or an admin) may read it.
func (h *AuditLogsHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role, _ := c.Get(middleware.ContextUserRole)

	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_session_id", "session id must be numeric")
		return
	}

	s, err := h.repo.GetSession(c.Request.Context(), uint(sessionID))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if _, ok := domain.PartyRole(s, userID); !ok && role != "admin" {
		httperr.Forbidden(c, "not_session_party", "")
		return
	}

	entries, err := h.repo.ListAuditEntries(c.Request.Context(), uint(sessionID))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, entries)
}
