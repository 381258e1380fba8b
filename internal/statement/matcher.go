// Package statement turns UPI/wallet statement text into transactions: it splits
// the text into date-anchored blocks, pulls fields out of each block with named
// matchers and assembles the survivors into records.
package statement

import "regexp"

// Matcher is a named, compiled pattern. Capture documents what the groups of
// Pattern hold so each extractor can be read and tested on its own.
type Matcher struct {
	Name    string
	Pattern *regexp.Regexp
	Capture string
}

// Match is one hit of a Matcher.
type Match struct {
	Text   string   // full matched text
	Groups []string // submatches, index 0 is the first group
	Start  int
	End    int
}

// NewMatcher compiles expr, panicking on invalid patterns like regexp.MustCompile.
func NewMatcher(name, expr, capture string) Matcher {
	return Matcher{Name: name, Pattern: regexp.MustCompile(expr), Capture: capture}
}

// Find returns the leftmost match in text.
func (m Matcher) Find(text string) (Match, bool) {
	loc := m.Pattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return Match{}, false
	}

	groups := make([]string, 0, len(loc)/2-1)
	for i := 2; i < len(loc); i += 2 {
		if loc[i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, text[loc[i]:loc[i+1]])
	}
	return Match{Text: text[loc[0]:loc[1]], Groups: groups, Start: loc[0], End: loc[1]}, true
}

// MatchString reports whether text contains a match.
func (m Matcher) MatchString(text string) bool {
	return m.Pattern.MatchString(text)
}

// Group returns the i-th submatch or "" when absent.
func (m Match) Group(i int) string {
	if i < 0 || i >= len(m.Groups) {
		return ""
	}
	return m.Groups[i]
}
