package util

import (
	"strings"

	"github.com/gosimple/slug"
)

const slugMaxLength = 15

var slugStopwords = map[string]bool{"the": true, "and": true, "of": true}

// ToSlug builds the short dotted slug used for assessments, e.g.
// "The Art of Go Programming" -> "art.go". Truncation happens on word
// boundaries; a single over-long first word is cut at slugMaxLength.
func ToSlug(value string) string {
	base := slug.Make(value)
	if base == "" {
		return ""
	}

	words := make([]string, 0, 8)
	for _, w := range strings.Split(base, "-") {
		if w != "" && !slugStopwords[w] {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return ""
	}

	out := ""
	for _, w := range words {
		candidate := w
		if out != "" {
			candidate = out + "." + w
		}
		if len(candidate) > slugMaxLength {
			break
		}
		out = candidate
	}
	if out == "" {
		out = words[0][:slugMaxLength]
	}
	return out
}
