package model

import (
	"strconv"
	"strings"
	"time"
)

// Fingerprint identifies a lap by its ordered sector times. Row ids are not
// usable for that, they change with every export of a session.
type Fingerprint string

func NewFingerprint(splits []time.Duration) Fingerprint {
	parts := make([]string, len(splits))
	for i, s := range splits {
		parts[i] = strconv.FormatInt(s.Milliseconds(), 10)
	}
	return Fingerprint(strings.Join(parts, ","))
}

type FingerprintSet map[Fingerprint]struct{}

func NewFingerprintSet(laps ...[]time.Duration) FingerprintSet {
	ret := make(FingerprintSet, len(laps))
	for _, splits := range laps {
		ret.Add(splits)
	}
	return ret
}

func (s FingerprintSet) Add(splits []time.Duration) {
	s[NewFingerprint(splits)] = struct{}{}
}

// SubsetOf reports whether every fingerprint of s is contained in other.
// Equal sets are subsets of each other.
func (s FingerprintSet) SubsetOf(other FingerprintSet) bool {
	for fp := range s {
		if _, ok := other[fp]; !ok {
			return false
		}
	}
	return true
}
