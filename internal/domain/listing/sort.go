package listing

import (
	"math"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is the sort order of a column.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
	// Unsorted leaves the collection in its existing order.
	Unsorted Direction = "none"
)

// ParseDirection maps user input to a Direction. Unknown values become Unsorted.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending
	case "desc", "descending":
		return Descending
	default:
		return Unsorted
	}
}

// IsValid checks if the direction is one of the known values
func (d Direction) IsValid() bool {
	return d == Ascending || d == Descending || d == Unsorted
}

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// apply orients an ascending comparison result for d.
func (d Direction) apply(result int) int {
	switch d {
	case Ascending:
		return result
	case Descending:
		return -result
	default:
		return 0
	}
}

// Collators keep internal buffers and must not be shared between goroutines.
var collators = sync.Pool{
	New: func() any {
		return collate.New(language.Und)
	},
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// CompareText orders two strings with locale-aware collation.
// Empty or whitespace-only values are placed first in ascending order and
// last in descending order.
func CompareText(a, b string, dir Direction) int {
	if dir != Ascending && dir != Descending {
		return 0
	}
	aEmpty, bEmpty := isBlank(a), isBlank(b)
	switch {
	case aEmpty && bEmpty:
		return 0
	case aEmpty:
		return dir.apply(-1)
	case bEmpty:
		return dir.apply(1)
	}

	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)
	return dir.apply(sign(c.CompareString(a, b)))
}

// CompareNumber orders two pre-parsed numbers. A nil side counts as 0;
// NaN is unorderable and compares equal.
func CompareNumber(pa, pb *float64, dir Direction) int {
	var a, b float64
	if pa != nil {
		a = *pa
	}
	if pb != nil {
		b = *pb
	}
	if math.IsNaN(a) || math.IsNaN(b) || a == b {
		return 0
	}
	if a < b {
		return dir.apply(-1)
	}
	return dir.apply(1)
}

// dateLayouts are tried in order when parsing date strings.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a date string in one of the accepted layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CompareDate orders two date strings by their timestamps.
// A missing or unparsable side makes the pair unorderable (0).
func CompareDate(a, b string, dir Direction) int {
	ta, okA := ParseDate(a)
	tb, okB := ParseDate(b)
	if !okA || !okB {
		return 0
	}
	return dir.apply(ta.Compare(tb))
}

// CompareBool places true before false in ascending order.
func CompareBool(a, b bool, dir Direction) int {
	switch {
	case a == b:
		return 0
	case a:
		return dir.apply(-1)
	default:
		return dir.apply(1)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// FormatDate renders an optional timestamp the way CompareDate expects it.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
