package version

import (
	"strings"
)

// Ordering is the result of comparing two version strings.
type Ordering int

const (
	// Less means the left version is older.
	Less Ordering = -1
	// Equal means both versions normalize to the same components.
	Equal Ordering = 0
	// Greater means the left version is newer.
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Greater:
		return "greater"
	default:
		return "equal"
	}
}

// Normalize extracts every maximal run of ASCII digits from v, in order.
// Leading zeros are stripped from each run; an all-zero run becomes "0".
func Normalize(v string) []string {
	var parts []string
	start := -1
	for i := 0; i <= len(v); i++ {
		isDigit := i < len(v) && v[i] >= '0' && v[i] <= '9'
		if isDigit && start < 0 {
			start = i
			continue
		}
		if !isDigit && start >= 0 {
			parts = append(parts, trimZeros(v[start:i]))
			start = -1
		}
	}
	return parts
}

// Compare orders a against b.
func Compare(a, b string) Ordering {
	pa, pb := Normalize(a), Normalize(b)

	if len(pa) == 0 && len(pb) == 0 {
		return fromInt(strings.Compare(a, b))
	}

	n := max(len(pa), len(pb))
	for i := 0; i < n; i++ {
		ca, cb := "0", "0"
		if i < len(pa) {
			ca = pa[i]
		}
		if i < len(pb) {
			cb = pb[i]
		}
		if c := compareDigits(ca, cb); c != Equal {
			return c
		}
	}
	return Equal
}

// IsNewer reports whether candidate orders strictly after current.
func IsNewer(current, candidate string) bool {
	return Compare(current, candidate) == Less
}

// compareDigits compares two zero-trimmed digit runs numerically without
// converting them, so arbitrarily long runs cannot overflow.
func compareDigits(a, b string) Ordering {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return Less
		}
		return Greater
	}
	return fromInt(strings.Compare(a, b))
}

func trimZeros(run string) string {
	trimmed := strings.TrimLeft(run, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func fromInt(c int) Ordering {
	switch {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	default:
		return Equal
	}
}
