package insights

import (
	"strconv"
	"strings"
	"unicode"

	"fjacquet/finflow/internal/currencyutils"
)

// MaxSuggestions caps the number of suggestions in a result.
const MaxSuggestions = 3

var bulletPrefixes = []string{"* ", "- ", "• "}

// ParseSuggestions keeps the advice lines worth showing: bullets are stripped,
// and a line survives when it mentions a rupee amount or opens with a symbol
// such as an emoji. At most MaxSuggestions lines are returned.
func ParseSuggestions(text string) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		line := stripBullets(strings.TrimSpace(raw))
		if line == "" {
			continue
		}
		if !strings.Contains(line, currencyutils.RupeeSymbol) && !opensWithSymbol(line) {
			continue
		}
		out = append(out, line)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}

func stripBullets(line string) string {
	for {
		trimmed := line
		for _, prefix := range bulletPrefixes {
			trimmed = strings.TrimPrefix(trimmed, prefix)
		}
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == line {
			return line
		}
		line = trimmed
	}
}

func opensWithSymbol(line string) bool {
	for _, r := range line {
		return unicode.IsSymbol(r)
	}
	return false
}

func strconvFloat(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}
