package config

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// suggestThreshold is the minimum Jaro-Winkler similarity for a hint.
const suggestThreshold = 0.7

// SuggestMode returns the valid mode closest to a mistyped one, or "" when
// nothing is similar enough.
func SuggestMode(s string) Mode {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return ""
	}
	var best Mode
	var bestScore float32
	for _, m := range Modes {
		score := edlib.JaroWinklerSimilarity(in, string(m))
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	if bestScore < suggestThreshold {
		return ""
	}
	return best
}
