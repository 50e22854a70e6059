package summarize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}\p{M}_]+`)

// minContentWordLen is the rune length a token must exceed to count for
// frequency scoring.
const minContentWordLen = 2

// Tokenize returns the lower-cased word tokens of sentence that are not
// stopwords, in order and with duplicates kept.
func Tokenize(sentence string, stop StopwordSet) []string {
	raw := wordPattern.FindAllString(strings.ToLower(sentence), -1)
	out := raw[:0]
	for _, w := range raw {
		if stop.Contains(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// ContentWords is Tokenize without tokens of two runes or fewer.
func ContentWords(sentence string, stop StopwordSet) []string {
	tokens := Tokenize(sentence, stop)
	out := tokens[:0]
	for _, w := range tokens {
		if utf8.RuneCountInString(w) <= minContentWordLen {
			continue
		}
		out = append(out, w)
	}
	return out
}

// TokenSet is the distinct token set of a sentence.
type TokenSet map[string]struct{}

// NewTokenSet collapses tokens into a set.
func NewTokenSet(tokens []string) TokenSet {
	set := make(TokenSet, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// TokenSets tokenizes every sentence.
func TokenSets(sentences []Sentence, stop StopwordSet) []TokenSet {
	out := make([]TokenSet, len(sentences))
	for i, s := range sentences {
		out[i] = NewTokenSet(Tokenize(s.Text, stop))
	}
	return out
}
