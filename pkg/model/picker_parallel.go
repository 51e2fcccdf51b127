package model

import (
	"runtime"

	"github.com/limaJavier/timetable-picker/pkg/calendar"
	"golang.org/x/sync/errgroup"
)

// Upper bound of candidates held in memory at once
const parallelBatchSize = 4096

type parallelPicker struct {
	calendar calendar.Calendar
	workers  int
	limit    int
}

// NewParallelPicker checks candidates in batches spread over workers goroutines (runtime.NumCPU() when workers <= 0).
// Results, candidate counts and limit semantics are the same as the sequential picker's
func NewParallelPicker(cal calendar.Calendar, workers int, limit int) Picker {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &parallelPicker{
		calendar: cal,
		workers:  workers,
		limit:    limit,
	}
}

func (picker *parallelPicker) Pick(sessions []Session, config FilterConfig) (PickResult, error) {
	buckets, err := prepare(sessions, config, picker.calendar)
	if err != nil {
		return PickResult{}, err
	}

	result := newPickResult(buckets)
	batch := make([]Combination, 0, parallelBatchSize)

	// Collects the batch's verdicts in enumeration order and reports whether the limit was reached
	collect := func() bool {
		accepted := picker.check(batch)
		defer func() { batch = batch[:0] }()

		for i, ok := range accepted {
			result.Candidates++
			if !ok {
				continue
			}

			result.Combinations = append(result.Combinations, batch[i])
			if limitReached(result, picker.limit) {
				return true
			}
		}
		return false
	}

	stopped := false
	for combination := range Enumerate(buckets) {
		batch = append(batch, combination)
		if len(batch) == parallelBatchSize {
			if stopped = collect(); stopped {
				break
			}
		}
	}

	if !stopped && len(batch) > 0 {
		collect()
	}

	return result, nil
}

func (picker *parallelPicker) Verify(combination Combination) bool {
	return verify(combination, picker.calendar)
}

// Checks the batch for conflicts on different goroutines, each one owning a contiguous chunk
func (picker *parallelPicker) check(batch []Combination) []bool {
	accepted := make([]bool, len(batch))
	if len(batch) == 0 {
		return accepted
	}

	chunk := (len(batch) + picker.workers - 1) / picker.workers

	var group errgroup.Group
	group.SetLimit(picker.workers)
	for start := 0; start < len(batch); start += chunk {
		end := min(start+chunk, len(batch))
		group.Go(func() error {
			for i := start; i < end; i++ {
				accepted[i] = !HasConflict(batch[i])
			}
			return nil
		})
	}
	_ = group.Wait() // Workers never fail

	return accepted
}
