package matching

import (
	"strings"
	"unicode"
)

// stopWords filters common words that add noise to title/field matching.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"job": true, "role": true, "team": true, "work": true, "join": true,
	"senior": true, "junior": true, "lead": true, "staff": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"degree": true, "science": true, "studies": true,
}

// significantWords tokenizes text into lowercase words of three or more
// characters, skipping stop words. Tech tokens like "c++", "c#" and
// "node.js" survive because + # . count as word characters.
func significantWords(text string) map[string]bool {
	words := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len([]rune(w)) >= 3 && !stopWords[w] {
			words[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return words
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
