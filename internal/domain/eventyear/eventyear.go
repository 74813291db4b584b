// Package eventyear extracts season years from free-text event names and
// from the date field of result records. Years feed the temporal window of
// the reconciliation pass only; they never contribute to similarity scores.
package eventyear

import "strconv"

const yearDigits = 4

// FromText scans text for the first 4-digit token beginning with "20" and
// returns it as an integer. The second return value is false when no such
// token exists.
func FromText(text string) (int, bool) {
	for i := 0; i+yearDigits <= len(text); i++ {
		if text[i] != '2' || text[i+1] != '0' {
			continue
		}
		if isDigit(text[i+2]) && isDigit(text[i+3]) {
			year, err := strconv.Atoi(text[i : i+yearDigits])
			if err != nil {
				continue
			}
			return year, true
		}
	}
	return 0, false
}

// FromDate parses the leading year segment of an ISO-like date string,
// e.g. "2022-03-01". Any parse failure is reported as absent, never as an
// error: a malformed date only degrades the temporal filter.
func FromDate(date string) (int, bool) {
	if len(date) < yearDigits {
		return 0, false
	}
	year, err := strconv.Atoi(date[:yearDigits])
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
