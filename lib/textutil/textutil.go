package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// companySuffixes are dropped before comparing organization names.
var companySuffixes = []string{
	",", ".", " inc", " llc", " ltd", " corp", " corporation", " co", " gmbh",
}

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	for {
		trimmed := name
		for _, s := range companySuffixes {
			trimmed = strings.TrimSuffix(trimmed, s)
		}
		if trimmed == name {
			break
		}
		name = trimmed
	}
	return strings.TrimSpace(name)
}

// Similarity is the Jaro-Winkler similarity of the normalized names, 1 for
// an exact match after normalization.
func Similarity(a, b string) float64 {
	a, b = NormalizeName(a), NormalizeName(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	return matchr.JaroWinkler(a, b, false)
}

// MatchName reports whether name is similar to any of the candidates by at
// least threshold.
func MatchName(name string, candidates []string, threshold float64) bool {
	for _, c := range candidates {
		if Similarity(name, c) >= threshold {
			return true
		}
	}
	return false
}
