package values

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggestionList filters options by edit distance to the input and orders
// them most-similar first, ties broken lexicographically for determinism.
func suggestionList(input string, options []string) []string {
	type scored struct {
		option   string
		distance int
	}
	var matches []scored
	inputThreshold := len(input)/2 + 1
	for _, option := range options {
		threshold := max(inputThreshold, len(option)/2+1)
		d := levenshtein.ComputeDistance(input, option)
		if d <= threshold {
			matches = append(matches, scored{option, d})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].option < matches[j].option
	})
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.option
	}
	return out
}

const maxSuggestions = 5

// didYouMean formats suggestions as a message suffix, e.g.
// ` Did you mean "name" or "nameLast"?`. Returns "" when there is nothing to
// suggest.
func didYouMean(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	quoted := make([]string, len(suggestions))
	for i, s := range suggestions {
		quoted[i] = `"` + s + `"`
	}
	var b strings.Builder
	b.WriteString(" Did you mean ")
	switch len(quoted) {
	case 1:
		b.WriteString(quoted[0])
	case 2:
		b.WriteString(quoted[0] + " or " + quoted[1])
	default:
		b.WriteString(strings.Join(quoted[:len(quoted)-1], ", "))
		b.WriteString(", or " + quoted[len(quoted)-1])
	}
	b.WriteString("?")
	return b.String()
}
