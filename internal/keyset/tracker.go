// Package keyset detects repeated field names while a document is encoded.
package keyset

import (
	"github.com/arloliu/docwire/internal/hash"
)

// Tracker records field names by their xxHash64 and reports repeats.
//
// Hash collisions between different names are resolved by comparing the
// stored names, so a collision never produces a false duplicate.
type Tracker struct {
	names map[uint64][]string
}

// NewTracker creates an empty tracker sized for n names.
func NewTracker(n int) *Tracker {
	return &Tracker{
		names: make(map[uint64][]string, n),
	}
}

// Track records name and reports whether it was already tracked.
func (t *Tracker) Track(name string) (duplicate bool) {
	h := hash.ID(name)
	for _, existing := range t.names[h] {
		if existing == name {
			return true
		}
	}

	t.names[h] = append(t.names[h], name)

	return false
}
