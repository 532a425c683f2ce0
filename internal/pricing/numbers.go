package pricing

import (
	"slices"
	"strconv"
)

// ParsePersonalID interprets an id made only of decimal digits as an
// integer. Empty ids, ids with any other character and ids that overflow
// uint64 are rejected.
func ParsePersonalID(id string) (uint64, bool) {
	if id == "" {
		return 0, false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func pow10(e int) uint64 {
	p := uint64(1)
	for range e {
		p *= 10
	}
	return p
}

func sortedDigits(s string) []byte {
	b := []byte(s)
	slices.Sort(b)
	return b
}

// IsVampire reports whether n has an even number of digits and splits into
// two factors of half that length whose digits, together, are a permutation
// of n's digits. Factors are scanned by brute force.
func IsVampire(n uint64) bool {
	s := strconv.FormatUint(n, 10)
	if len(s)%2 != 0 {
		return false
	}
	half := len(s) / 2
	want := sortedDigits(s)

	// factors shorter than half digits can never qualify
	for f1 := pow10(half - 1); f1 < pow10(half); f1++ {
		if f1 == 0 || n%f1 != 0 {
			continue
		}
		f2 := n / f1
		s1 := strconv.FormatUint(f1, 10)
		s2 := strconv.FormatUint(f2, 10)
		if len(s1) != half || len(s2) != half {
			continue
		}
		if slices.Equal(sortedDigits(s1+s2), want) {
			return true
		}
	}
	return false
}

// IsPerfect reports whether a positive n equals the sum of its proper
// divisors.
func IsPerfect(n uint64) bool {
	if n < 2 {
		return false
	}
	sum := uint64(1)
	for d := uint64(2); d*d <= n; d++ {
		if n%d != 0 {
			continue
		}
		sum += d
		if q := n / d; q != d {
			sum += q
		}
		if sum > n {
			return false
		}
	}
	return sum == n
}
