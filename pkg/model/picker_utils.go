package model

import (
	"github.com/limaJavier/timetable-picker/pkg/calendar"
)

// Runs the steps preceding the enumeration: validation, filtering and grouping
func prepare(sessions []Session, config FilterConfig, cal calendar.Calendar) ([]Bucket, error) {
	if err := ValidateSessions(sessions, cal); err != nil {
		return nil, err
	}

	filtered, err := Filter(sessions, config, cal)
	if err != nil {
		return nil, err
	}

	return Group(filtered), nil
}

func newPickResult(buckets []Bucket) PickResult {
	return PickResult{
		Buckets:      buckets,
		Cardinality:  Cardinality(buckets),
		Combinations: make([]Combination, 0),
	}
}

func verify(combination Combination, cal calendar.Calendar) bool {
	if err := ValidateSessions(combination, cal); err != nil {
		return false
	}

	seen := make(map[BucketKey]bool, len(combination))
	for _, session := range combination {
		key := BucketKey{Subject: session.Subject, Type: session.Type}
		if seen[key] {
			return false
		}
		seen[key] = true
	}

	return !HasConflict(combination)
}

// Reports whether the limit (when positive) has been reached
func limitReached(result PickResult, limit int) bool {
	return limit > 0 && len(result.Combinations) >= limit
}
