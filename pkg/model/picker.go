package model

type Picker interface {
	// Validates, filters and groups the sessions, then enumerates every combination of one session per bucket and keeps the conflict-free ones in enumeration order
	Pick(
		sessions []Session,
		config FilterConfig,
	) (PickResult, error)

	// Checks that the combination has at most one session per bucket, that its sessions are valid and that no two of them overlap
	Verify(
		combination Combination,
	) bool
}

type PickResult struct {
	Buckets      []Bucket      // Buckets the combinations were drawn from
	Cardinality  uint64        // Number of raw candidates (product of bucket sizes)
	Candidates   uint64        // Number of candidates actually examined (less than Cardinality when stopped by a limit)
	Combinations []Combination // Accepted (conflict-free) combinations
}
