package model

import (
	"iter"

	"github.com/samber/lo"
)

type combinationGenerator interface {
	// Lazily yields every index vector holding one index per domain (i.e. the cartesian product of the domains) in odometer order: the last domain advances fastest.
	// The yielded slice is reused by the next iteration, so it must be copied in order to be retained.
	// Nothing is yielded when there are no domains or when any domain is empty
	//
	// Example:
	//
	//	generator := newCombinationGenerator([]int{2, 3})
	//
	//	for indices := range generator.Combinations() {
	//		fmt.Println(indices) // [0 0], [0 1], [0 2], [1 0], [1 1], [1 2]
	//	}
	Combinations() iter.Seq[[]int]

	// Returns the number of vectors Combinations yields (saturated at math.MaxUint64)
	Cardinality() uint64
}

func newCombinationGenerator(domains []int) combinationGenerator {
	return &combinationGeneratorImplementation{domains: domains}
}

// Enumerate lazily yields every candidate combination of the buckets (one session per bucket) in odometer order. Each yielded combination is freshly allocated
func Enumerate(buckets []Bucket) iter.Seq[Combination] {
	generator := newCombinationGenerator(bucketSizes(buckets))

	return func(yield func(Combination) bool) {
		for indices := range generator.Combinations() {
			combination := make(Combination, len(indices))
			for bucket, index := range indices {
				combination[bucket] = buckets[bucket].Sessions[index]
			}

			if !yield(combination) {
				return
			}
		}
	}
}

// Cardinality returns the number of candidates Enumerate yields for the buckets
func Cardinality(buckets []Bucket) uint64 {
	return newCombinationGenerator(bucketSizes(buckets)).Cardinality()
}

func bucketSizes(buckets []Bucket) []int {
	return lo.Map(buckets, func(bucket Bucket, _ int) int { return len(bucket.Sessions) })
}
