package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/fishmaster-api/internal/domain/waterparams"
)

// Register adds the "ph" binding tag: a pH value within [0, 14].
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("ph", validatePh)
}

func validatePh(fl validator.FieldLevel) bool {
	return waterparams.ValidatePh(fl.Field().Float()) == nil
}
