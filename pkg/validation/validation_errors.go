package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"Title":      "Job title",
	"Company":    "Company",
	"Status":     "Status",
	"Deadline":   "Deadline",
	"AppliedOn":  "Applied on",
	"Portal":     "Portal",
	"StatusLink": "Status link",
	"Name":       "Name",
	"Email":      "Email",
}

// enumOptions remembers the allowed values of tags added with RegisterEnum
var enumOptions = map[string][]string{}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required", "not_blank":
		return fmt.Sprintf("%s: is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	case "email":
		return fmt.Sprintf("%s: invalid email address", label)
	case "url", "http_url":
		return fmt.Sprintf("%s: invalid URL", label)
	case "datetime":
		return fmt.Sprintf("%s: must be a date in YYYY-MM-DD format", label)
	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or symbols", label)
	default:
		if options, ok := enumOptions[e.Tag()]; ok {
			return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(options, ", "))
		}
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
