package summarize

import "strings"

// Sentence is one segment of a normalized document.
// Position is its zero-based index in the document.
type Sentence struct {
	Position int
	Text     string
}

// Segment splits normalized text into sentences.
//
// A boundary is a run of terminal punctuation (., ! or ?), optionally followed
// by closing quotes, that is followed by whitespace or the end of the text.
// Text after the last boundary becomes a final sentence. Empty segments are
// dropped, so every returned sentence contains at least one non-space rune.
func Segment(text string) []Sentence {
	runes := []rune(strings.TrimSpace(text))
	var out []Sentence

	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		end := i + 1
		for end < len(runes) && (isTerminal(runes[end]) || isClosingQuote(runes[end])) {
			end++
		}
		// "3.14" や "e.g.x" のように直後が空白でなければ文末ではない
		if end < len(runes) && !isSpace(runes[end]) {
			i = end - 1
			continue
		}
		out = appendSentence(out, runes[start:end])
		start = end
		i = end - 1
	}
	if start < len(runes) {
		out = appendSentence(out, runes[start:])
	}
	return out
}

func appendSentence(out []Sentence, runes []rune) []Sentence {
	text := strings.TrimFunc(string(runes), isSpace)
	if text == "" {
		return out
	}
	return append(out, Sentence{Position: len(out), Text: text})
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isClosingQuote(r rune) bool {
	return r == '"' || r == '\''
}

// Texts returns the sentence texts in document order.
func Texts(sentences []Sentence) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Text
	}
	return out
}
