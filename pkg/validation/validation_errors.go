package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Codes reported to clients, keyed by validator tag
const (
	CodeTooShort      = "too_short"
	CodeInvalidFormat = "invalid_format"
)

var tagCodes = map[string]string{
	"trimmed_min":   CodeTooShort,
	"min":           CodeTooShort,
	"contact_email": CodeInvalidFormat,
	"email":         CodeInvalidFormat,
}

// FieldLabels maps json field names to user-friendly labels
var FieldLabels = map[string]string{
	"name":    "Name",
	"email":   "Email",
	"subject": "Subject",
	"message": "Message",
}

// MinLengths mirrors the trimmed_min params so messages can quote them
var MinLengths = map[string]int{
	"name":    2,
	"subject": 5,
	"message": 10,
}

// FieldCodes converts validator.ValidationErrors to a field -> code map.
// Returns nil when err carries no field errors.
func FieldCodes(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	codes := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		code, ok := tagCodes[e.Tag()]
		if !ok {
			code = CodeInvalidFormat
		}
		// first failing rule wins
		if _, seen := codes[e.Field()]; !seen {
			codes[e.Field()] = code
		}
	}
	return codes
}

// Messages renders user-facing text for each field code
func Messages(codes map[string]string) map[string]string {
	messages := make(map[string]string, len(codes))
	for field, code := range codes {
		messages[field] = formatMessage(field, code)
	}
	return messages
}

func formatMessage(field, code string) string {
	label := getFieldLabel(field)

	switch code {
	case CodeTooShort:
		if min, ok := MinLengths[field]; ok {
			return fmt.Sprintf("%s must be at least %d characters.", label, min)
		}
		return fmt.Sprintf("%s is too short.", label)

	case CodeInvalidFormat:
		if field == "email" {
			return "Please enter a valid email address."
		}
		return fmt.Sprintf("%s has an invalid format.", label)

	default:
		return fmt.Sprintf("%s is invalid (%s).", label, code)
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
