package model

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/limaJavier/timetable-picker/pkg/calendar"
)

// FilterConfig holds the user's exclusions. Zero values (empty slice, empty pattern, nil hours) put no restriction on their axis
type FilterConfig struct {
	ExcludedDays           []int
	ExcludedTeacherPattern string
	MinHour                *int
	MaxHour                *int
}

// Filter keeps, in input order, the sessions that survive every exclusion rule:
//   - a full session is dropped unless the student already holds it
//   - sessions on excluded days are dropped
//   - sessions whose teacher matches the excluded pattern (regex search) are dropped
//   - sessions beginning before MinHour or ending after MaxHour are dropped
func Filter(sessions []Session, config FilterConfig, cal calendar.Calendar) ([]Session, error) {
	var excludedTeacher *regexp.Regexp
	if config.ExcludedTeacherPattern != "" {
		pattern, err := regexp.Compile(config.ExcludedTeacherPattern)
		if err != nil {
			return nil, fmt.Errorf("cannot compile excluded-teacher pattern: %w", err)
		}
		excludedTeacher = pattern
	}

	filtered := make([]Session, 0, len(sessions))
	for _, session := range sessions {
		if session.Full && !session.Picked {
			continue
		} else if slices.Contains(config.ExcludedDays, session.Day) {
			continue
		} else if excludedTeacher != nil && excludedTeacher.MatchString(session.Teacher) {
			continue
		}

		if config.MinHour != nil || config.MaxHour != nil {
			beginHour, endHour, err := sessionHours(session, cal)
			if err != nil {
				return nil, err
			}

			if config.MinHour != nil && beginHour < *config.MinHour {
				continue
			} else if config.MaxHour != nil && endHour > *config.MaxHour {
				continue
			}
		}

		filtered = append(filtered, session)
	}

	return filtered, nil
}

func sessionHours(session Session, cal calendar.Calendar) (beginHour int, endHour int, err error) {
	beginTime, endTime, err := cal.TimeRangeOf(session.BeginSlot, session.EndSlot)
	if err != nil {
		return 0, 0, fmt.Errorf("cannot derive hours of session %q: %w", session.EventId, err)
	}

	if beginHour, err = calendar.Hour(beginTime); err != nil {
		return 0, 0, err
	}
	if endHour, err = calendar.Hour(endTime); err != nil {
		return 0, 0, err
	}
	return beginHour, endHour, nil
}
