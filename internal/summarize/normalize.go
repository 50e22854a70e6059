// Package summarize implements the extractive summarization engine.
//
// A document flows through normalization, sentence segmentation, lexical
// filtering and one of several rankers. The Engine orchestrates the rankers
// as an ordered fallback chain and always produces a summary for a
// non-empty document.
package summarize

import (
	"strings"
	"unicode"
)

// keptPunctuation lists the punctuation that survives normalization.
const keptPunctuation = `.,!?;:'"-`

// Normalize collapses whitespace runs into a single space and removes every
// character that is neither a word character, whitespace nor one of
// keptPunctuation. The result has no leading or trailing space.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range text {
		switch {
		case isSpace(r):
			pendingSpace = true
			continue
		case isWordRune(r), strings.ContainsRune(keptPunctuation, r):
		default:
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// isWordRune reports whether r is a letter, digit, combining mark or underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

// isSpace is unicode.IsSpace plus the information separators U+001C..U+001F.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
