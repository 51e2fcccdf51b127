package model

import "github.com/limaJavier/timetable-picker/pkg/calendar"

type sequentialPicker struct {
	calendar calendar.Calendar
	limit    int
}

// NewSequentialPicker checks candidates one by one as they are enumerated. A positive limit stops the enumeration once that many combinations are accepted
func NewSequentialPicker(cal calendar.Calendar, limit int) Picker {
	return &sequentialPicker{
		calendar: cal,
		limit:    limit,
	}
}

func (picker *sequentialPicker) Pick(sessions []Session, config FilterConfig) (PickResult, error) {
	buckets, err := prepare(sessions, config, picker.calendar)
	if err != nil {
		return PickResult{}, err
	}

	result := newPickResult(buckets)
	for combination := range Enumerate(buckets) {
		result.Candidates++
		if HasConflict(combination) {
			continue
		}

		result.Combinations = append(result.Combinations, combination)
		if limitReached(result, picker.limit) {
			break
		}
	}

	return result, nil
}

func (picker *sequentialPicker) Verify(combination Combination) bool {
	return verify(combination, picker.calendar)
}
