package model

import (
	"iter"
	"math"
	"math/bits"

	"github.com/samber/lo"
)

type combinationGeneratorImplementation struct {
	domains []int
}

func (generator *combinationGeneratorImplementation) Combinations() iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if generator.empty() {
			return
		}

		combination := make([]int, len(generator.domains))
		for {
			if !yield(combination) {
				return
			}

			// Advance the rightmost domain and carry leftwards when it wraps around
			current := len(generator.domains) - 1
			for ; current >= 0; current-- {
				combination[current]++
				if combination[current] < generator.domains[current] {
					break
				}
				combination[current] = 0
			}

			// Every domain wrapped around, hence the product is exhausted
			if current < 0 {
				return
			}
		}
	}
}

func (generator *combinationGeneratorImplementation) Cardinality() uint64 {
	if generator.empty() {
		return 0
	}

	return lo.Reduce(generator.domains, func(product uint64, domain int, _ int) uint64 {
		high, low := bits.Mul64(product, uint64(domain))
		if high != 0 {
			return math.MaxUint64
		}
		return low
	}, uint64(1))
}

func (generator *combinationGeneratorImplementation) empty() bool {
	return len(generator.domains) == 0 || lo.SomeBy(generator.domains, func(domain int) bool { return domain <= 0 })
}
