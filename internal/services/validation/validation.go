// Package validation holds the pure request validators applied before
// any business logic runs. Checks are order-sensitive (presence, type,
// length, domain), short-circuit at the first failure, and report
// exactly one error with a caller-facing message.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxChatMessageLength is the character limit for chat messages.
	MaxChatMessageLength = 5000

	// MaxTestDescriptionLength is the character limit for test descriptions.
	MaxTestDescriptionLength = 2000
)

// SourceTypes enumerates the accepted sources for test generation.
var SourceTypes = []string{"figma", "jira", "testrail", "manual"}

// FieldError is a validation failure on one request field. The message
// is returned verbatim to the caller in a 400 response.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// ChatMessage validates the message field of a chat request. The value
// arrives as decoded JSON (any type) so presence, type and length can be
// distinguished.
func ChatMessage(value interface{}) *FieldError {
	return requiredBoundedString("message", "Message", value, MaxChatMessageLength)
}

// TestDescription validates the description field of a test-generation
// request.
func TestDescription(value interface{}) *FieldError {
	return requiredBoundedString("description", "Description", value, MaxTestDescriptionLength)
}

// TestSourceType validates the optional sourceType field. An absent or
// empty value passes; a present value must name one of the enumerated
// source kinds.
func TestSourceType(value interface{}) *FieldError {
	if isFalsy(value) {
		return nil
	}

	s, ok := value.(string)
	if !ok || !isSourceType(s) {
		return &FieldError{
			Field:   "sourceType",
			Message: fmt.Sprintf("Invalid sourceType. Must be one of: %s", strings.Join(SourceTypes, ", ")),
		}
	}
	return nil
}

// TestCode validates the code field of a validate-test request.
// Only presence is checked; the validator itself is a stub.
func TestCode(value interface{}) *FieldError {
	if isFalsy(value) {
		return &FieldError{Field: "code", Message: "Test code is required"}
	}
	return nil
}

// isFalsy mirrors the presence check on decoded JSON values: absent
// fields, empty strings, zero numbers and false all count as missing.
func isFalsy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case float64:
		return v == 0
	default:
		return false
	}
}

// requiredBoundedString applies the shared presence/type/length sequence.
// label is the capitalized field name used in messages.
func requiredBoundedString(field, label string, value interface{}, max int) *FieldError {
	if isFalsy(value) {
		return &FieldError{Field: field, Message: fmt.Sprintf("%s is required", label)}
	}

	s, ok := value.(string)
	if !ok {
		return &FieldError{Field: field, Message: fmt.Sprintf("%s must be a string", label)}
	}

	// Limits are character counts, not bytes: multibyte input under the
	// limit must pass.
	if utf8.RuneCountInString(s) > max {
		return &FieldError{Field: field, Message: fmt.Sprintf("%s must not exceed %d characters", label, max)}
	}

	return nil
}

func isSourceType(s string) bool {
	for _, t := range SourceTypes {
		if s == t {
			return true
		}
	}
	return false
}
