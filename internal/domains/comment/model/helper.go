package model

import (
	"math"
	"regexp"
	"strings"
)

var htmlTagPattern = regexp.MustCompile(`</?[^>]+(>|$)`)

// CleanContent strips HTML tags and trims surrounding whitespace. Length
// validation runs against the cleaned text, not the raw input.
func CleanContent(raw string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(raw, ""))
}

// ContainsBannedWord checks the cleaned text against the denylist.
func ContainsBannedWord(text string) bool {
	t := strings.ToLower(text)
	for _, w := range BannedWords {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}

// Round2 rounds to two decimal places, the precision of avg_rating.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
