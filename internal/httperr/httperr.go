package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// statusByCode maps business error codes onto the HTTP surface.
// Unlisted codes default to 400.
var statusByCode = map[string]int{
	"mentor_not_found":    http.StatusNotFound,
	"mentor_unavailable":  http.StatusNotFound,
	"schedule_not_found":  http.StatusNotFound,
	"session_not_found":   http.StatusNotFound,
	"request_not_found":   http.StatusNotFound,
	"exception_not_found": http.StatusNotFound,
	"user_not_found":      http.StatusNotFound,
	"not_session_party":   http.StatusForbidden,
	"not_your_turn":       http.StatusForbidden,
	"self_response":       http.StatusForbidden,
	"mentee_only_action":  http.StatusForbidden,
	"admin_only":          http.StatusForbidden,

	"time_conflict":            http.StatusConflict,
	"already_cancelled":        http.StatusConflict,
	"already_completed":        http.StatusConflict,
	"request_already_resolved": http.StatusConflict,
	"reschedule_pending":       http.StatusConflict,

	"rate_limited": http.StatusTooManyRequests,
}

// StatusOf resolves the HTTP status for a business error code.
func StatusOf(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusBadRequest
}

// Respond turns any error into a structured response. Business errors map
// through StatusOf; everything else is a 500 with an opaque code.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, StatusOf(be.Code), be.Code, be.Error())
		return
	}
	Internal(c, "internal_error", "unexpected error")
}
