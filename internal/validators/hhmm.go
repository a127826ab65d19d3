package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/domain/availability"
)

// RegisterHHMM wires the "hhmm" binding tag used by time-block payloads.
func RegisterHHMM() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return availability.IsHHMM(fl.Field().String())
		})
	}
}
