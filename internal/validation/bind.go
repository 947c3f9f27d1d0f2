package validation

import (
	"net/http"

	"laundrilo-be/internal/httpx"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// BindAndValidate binds the JSON body into `out` and runs validation.
// On failure it writes a 400 envelope and returns an error so the
// handler can short-circuit.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		httpx.Error(c, http.StatusBadRequest, "invalid request body")
		return err
	}

	if err := v.Struct(out); err != nil {
		httpx.ValidationError(c, http.StatusBadRequest, "validation failed", validationErrorsToMap(err))
		return err
	}
	return nil
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.Field()] = "failed on rule '" + fe.Tag() + "'"
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}
