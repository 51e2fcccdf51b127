package model

// Group partitions sessions into one bucket per (subject, type). Buckets come in the order their key is first seen and keep input order inside
func Group(sessions []Session) []Bucket {
	positions := make(map[BucketKey]int)
	buckets := make([]Bucket, 0)

	for _, session := range sessions {
		key := BucketKey{Subject: session.Subject, Type: session.Type}

		// Initialize bucket on first encounter
		position, ok := positions[key]
		if !ok {
			position = len(buckets)
			positions[key] = position
			buckets = append(buckets, Bucket{Subject: key.Subject, Type: key.Type, Sessions: make([]Session, 0)})
		}

		buckets[position].Sessions = append(buckets[position].Sessions, session)
	}

	return buckets
}
