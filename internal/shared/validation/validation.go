package validation

import (
	"fmt"

	"boxoffice/internal/inventory"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators installs binding rules on gin's validator engine.
// Call once at startup before routes are served.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine type")
	}

	// seatstatus accepts the canonical status vocabulary plus spellings the
	// normalizer maps onto it. The write path still normalizes; this rule
	// rejects values that would otherwise silently collapse to free.
	if err := v.RegisterValidation("seatstatus", validSeatStatus); err != nil {
		return fmt.Errorf("failed to register seatstatus rule: %w", err)
	}

	return nil
}

func validSeatStatus(fl validator.FieldLevel) bool {
	return inventory.IsRecognized(fl.Field().String())
}
