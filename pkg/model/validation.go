package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/limaJavier/timetable-picker/pkg/calendar"
)

var sessionValidator = validator.New()

// ValidateSessions fails on the first session whose slot range is inverted, negative or outside the calendar, or whose type is unknown. Days are not checked
func ValidateSessions(sessions []Session, cal calendar.Calendar) error {
	for i, session := range sessions {
		if err := sessionValidator.Struct(session); err != nil {
			return &InvalidSessionError{Index: i, Session: session, Reason: describeValidationError(session, err)}
		}

		// The upper slot bound depends on the calendar, so struct tags cannot express it
		if _, err := cal.WindowOf(session.EndSlot); err != nil {
			return &InvalidSessionError{Index: i, Session: session, Reason: err.Error()}
		}
	}
	return nil
}

func describeValidationError(session Session, err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	fieldError := validationErrors[0]
	switch fieldError.Tag() {
	case "ltefield":
		return fmt.Sprintf("begin slot %d is after end slot %d", session.BeginSlot, session.EndSlot)
	case "gte":
		return fmt.Sprintf("%s must not be negative, got %v", fieldError.Field(), fieldError.Value())
	case "oneof":
		return fmt.Sprintf("unknown session type %d", int(session.Type))
	default:
		return fieldError.Error()
	}
}
