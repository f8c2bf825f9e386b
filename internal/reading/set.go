package reading

import "sort"

// Set is the retained set of readings, ordered ascending by timestamp with
// ties broken by identity so downstream rendering is deterministic. A Set
// is never mutated after construction; Merge returns a fresh one.
type Set []Reading

// Merge combines the existing set with an incoming batch, dedupes by
// identity and drops everything older than cutoff. On an identity
// collision the incoming reading wins; within a batch the last occurrence
// in arrival order wins. Calling Merge twice with the same batch yields
// the same set.
func Merge(existing Set, incoming []Reading, cutoff int64) Set {
	byID := make(map[string]Reading, len(existing)+len(incoming))

	for _, r := range existing {
		byID[r.Identity()] = r
	}
	for _, r := range incoming {
		byID[r.Identity()] = r
	}

	merged := make(Set, 0, len(byID))
	for _, r := range byID {
		if r.Timestamp < cutoff {
			continue
		}
		merged = append(merged, r)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Timestamp != merged[j].Timestamp {
			return merged[i].Timestamp < merged[j].Timestamp
		}
		return merged[i].Identity() < merged[j].Identity()
	})

	return merged
}

// Prune drops readings older than cutoff without merging anything new.
func Prune(existing Set, cutoff int64) Set {
	return Merge(existing, nil, cutoff)
}

// Window returns the subsequence with windowStart <= timestamp <=
// windowEnd, both ends inclusive. The receiver's ordering is preserved.
func (s Set) Window(windowStart, windowEnd int64) Set {
	lo := sort.Search(len(s), func(i int) bool { return s[i].Timestamp >= windowStart })
	hi := sort.Search(len(s), func(i int) bool { return s[i].Timestamp > windowEnd })
	if lo >= hi {
		return nil
	}

	return s[lo:hi]
}
