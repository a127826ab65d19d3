// Package httpresp holds the success envelopes shared by the session
// and availability handlers.
package httpresp

import "github.com/gin-gonic/gin"

// ListResponse wraps collection payloads (sessions, slots, audit trails)
// together with their total.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
