package service

import (
	"strings"

	"go-3pl-warehouse/pkg/validator"

	"github.com/google/uuid"
)

// requireFields validates req; a missing required field is reported with msg,
// any other rule failure with its own message.
func requireFields(req interface{}, msg string) error {
	errs := validator.ValidateStruct(req)
	if len(errs) == 0 {
		return nil
	}
	for _, e := range errs {
		if e.Tag == "required" || e.Tag == "uuid_required" {
			return validationError("%s", msg)
		}
	}
	return validationError("%s", errs[0].Message())
}

// ParseID parses a path or query id; anything unparsable can never match a row
func ParseID(raw string, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, notFound(entity)
	}
	return id, nil
}

// optionalID parses an optional filter, empty means no filter
func optionalID(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, validationError("invalid id %q", raw)
	}
	return &id, nil
}

// nullable stores an empty string as NULL
func nullable(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// keepUnlessBlank returns current when next is nil or blank
func keepUnlessBlank(next *string, current string) string {
	if next == nil || strings.TrimSpace(*next) == "" {
		return current
	}
	return strings.TrimSpace(*next)
}

// keepUnlessNil returns current when next is nil; an explicit "" clears the field
func keepUnlessNil(next *string, current string) string {
	if next == nil {
		return current
	}
	return *next
}
