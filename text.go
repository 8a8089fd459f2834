package bizlist

import (
	"regexp"
	"strconv"
	"strings"
)

// NotDisclosed is the literal every "not disclosed" spelling resolves to.
const NotDisclosed = "Not Disclosed"

var (
	moneyRE   = regexp.MustCompile(`([-+]?)\$?\s*(\d+(?:\.\d+)?)`)
	integerRE = regexp.MustCompile(`[-+]?\d+`)
)

// sentinels are lower-cased values meaning "no data provided".
var sentinels = map[string]struct{}{
	"":               {},
	"n/a":            {},
	"na":             {},
	"not applicable": {},
	"unknown":        {},
}

// Collapse trims s and collapses internal whitespace runs to single spaces.
// It reports false when nothing remains.
func Collapse(s string) (string, bool) {
	s = strings.Join(strings.Fields(s), " ")
	return s, s != ""
}

// ResolveSentinel maps "no data" spellings to absent and every "not
// disclosed" spelling to NotDisclosed. Any other value is returned trimmed
// but otherwise unchanged.
func ResolveSentinel(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch lower := strings.ToLower(s); lower {
	case "not disclosed", "undisclosed":
		return NotDisclosed, true
	default:
		if _, ok := sentinels[lower]; ok {
			return "", false
		}
	}
	return s, true
}

// CleanText collapses s and resolves sentinels. This is the normalization
// every extracted text value goes through.
func CleanText(s string) (string, bool) {
	s, ok := Collapse(s)
	if !ok {
		return "", false
	}
	return ResolveSentinel(s)
}

// ParseMoney returns the first signed, optionally dollar-prefixed decimal
// number in s. Thousands separators are ignored.
func ParseMoney(s string) (float64, bool) {
	m := moneyRE.FindStringSubmatch(strings.ReplaceAll(s, ",", ""))
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(m[1]+m[2], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseInteger returns the first optionally signed run of digits in s.
// Thousands separators are ignored.
func ParseInteger(s string) (int64, bool) {
	m := integerRE.FindString(strings.ReplaceAll(s, ",", ""))
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeLabel returns the alias lookup key for a raw label.
func NormalizeLabel(s string) string {
	s, _ = Collapse(s)
	return strings.ToUpper(s)
}
