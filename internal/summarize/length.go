package summarize

import "strings"

// TargetSentences maps the word count of the raw document to the number of
// sentences a summary should contain.
func TargetSentences(wordCount int) int {
	switch {
	case wordCount < 100:
		return 2
	case wordCount < 500:
		return 3
	case wordCount < 1000:
		return 5
	default:
		return 7
	}
}

// WordCount counts whitespace separated tokens.
func WordCount(text string) int {
	return len(strings.FieldsFunc(text, isSpace))
}
