package atlas

import (
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
)

// Strings are only tried as dates when their length is strictly between
// these bounds.
const (
	dateMinLen = 8
	dateMaxLen = 22
)

// DetectDate reports whether s reads as a date or time, and which one.
// Only strings of 9 to 21 characters are tried. Values without a zone are
// taken as UTC. It never panics: anything unparsable returns false.
//
// The heuristic is loose on purpose, so numeric strings such as
// "123456789" can come back as dates.
func DetectDate(s string) (t time.Time, ok bool) {
	if n := utf8.RuneCountInString(s); n <= dateMinLen || n >= dateMaxLen {
		return time.Time{}, false
	}

	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()

	parsed, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
