package service

import (
	"fmt"
	"net/url"
	"strings"

	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
)

// requiredText trims and validates a mandatory string field.
func requiredText(field, value string, maxLength int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", appErrors.Clone(appErrors.ErrInvalidInput, fmt.Sprintf("field %q cannot be empty", field))
	}
	if len(trimmed) > maxLength {
		return "", tooLarge(field, maxLength)
	}
	return trimmed, nil
}

// optionalText trims and validates an optional string field; empty in,
// empty out.
func optionalText(field, value string, maxLength int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > maxLength {
		return "", tooLarge(field, maxLength)
	}
	return trimmed, nil
}

func tooLarge(field string, maxLength int) error {
	err := appErrors.Clone(appErrors.ErrInputTooLarge, fmt.Sprintf("field %q exceeds maximum length", field))
	return appErrors.WithDetails(err, map[string]interface{}{"field": field, "maxLength": maxLength})
}

// isValidHTTPURL accepts absolute http(s) URLs only.
func isValidHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
