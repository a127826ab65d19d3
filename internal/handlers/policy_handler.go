package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httperr"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httpresp"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/policy"
)

type PolicyHandler struct {
	store *policy.Store
}

func NewPolicyHandler(store *policy.Store) *PolicyHandler {
	return &PolicyHandler{store: store}
}

type UpdatePolicyRequest struct {
	Value string `json:"value" binding:"required,max=64"`
}

// List returns every policy key with its effective value (stored row or
// built-in default).
func (h *PolicyHandler) List(c *gin.Context) {
	values, err := h.store.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, values)
}

func (h *PolicyHandler) Update(c *gin.Context) {
	key := c.Param("key")
	if _, ok := policy.Defaults[key]; !ok {
		httperr.NotFound(c, "policy_not_found", "unknown policy key")
		return
	}

	var req UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}
	if _, err := strconv.Atoi(req.Value); err != nil {
		httperr.BadRequest(c, "invalid_policy_value", "value must be an integer")
		return
	}

	if err := h.store.Set(c.Request.Context(), key, req.Value); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"key": key, "value": req.Value})
}
