package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
)

// bindJSON decodes the request body into dest. Tag violations surface as
// INVALID_INPUT naming the first offending field; anything else the decoder
// rejects is reported as malformed JSON.
func bindJSON(c *gin.Context, dest interface{}, message string) error {
	err := c.ShouldBindJSON(dest)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		invalid := appErrors.Clone(appErrors.ErrInvalidInput, "missing or invalid field")
		return appErrors.WithDetails(invalid, map[string]interface{}{
			"field": fieldErrs[0].Field(),
		})
	}
	return appErrors.Wrap(err, appErrors.ErrInvalidJSON.Code, appErrors.ErrInvalidJSON.Status, message)
}
