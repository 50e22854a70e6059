package summarize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"summary-service/internal/summarize"
)

/* ───────── Normalize ───────── */

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "collapses whitespace", in: "Hello   world\n\tagain", want: "Hello world again"},
		{name: "trims ends", in: "  leading and trailing \n", want: "leading and trailing"},
		{name: "drops disallowed symbols", in: "Price: $5 @ store!", want: "Price: 5 store!"},
		{name: "keeps allowed punctuation", in: `He said, "wait-no; yes: ok?" It's fine.`, want: `He said, "wait-no; yes: ok?" It's fine.`},
		{name: "keeps unicode letters", in: "café naïve 日本語 text", want: "café naïve 日本語 text"},
		{name: "empty", in: "", want: ""},
		{name: "only symbols", in: " #$% &* ", want: ""},
		{name: "information separators are whitespace", in: "a\x1fb\x1cc\x1d\x1ed", want: "a b c d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summarize.Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"A  b\n\nc",
		"Weird   <tags> & [brackets] {here}.",
		"\t Tabs\tand   newlines\r\n",
		"already clean text.",
	}
	for _, in := range inputs {
		once := summarize.Normalize(in)
		assert.Equal(t, once, summarize.Normalize(once), "input %q", in)
	}
}

/* ───────── Segment ───────── */

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "basic terminals",
			in:   "First one. Second one! Third one? Fourth",
			want: []string{"First one.", "Second one!", "Third one?", "Fourth"},
		},
		{
			name: "decimal point is not a boundary",
			in:   "Pi is 3.14 today. Yes.",
			want: []string{"Pi is 3.14 today.", "Yes."},
		},
		{
			name: "closing quote stays with sentence",
			in:   `He said "stop." Then left.`,
			want: []string{`He said "stop."`, "Then left."},
		},
		{
			name: "punctuation runs",
			in:   "Wait... what?! Okay.",
			want: []string{"Wait...", "what?!", "Okay."},
		},
		{
			name: "separator after terminal ends sentence",
			in:   "One.\x1eTwo.",
			want: []string{"One.", "Two."},
		},
		{
			name: "no terminal punctuation",
			in:   "just one fragment",
			want: []string{"just one fragment"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarize.Segment(tt.in)
			assert.Equal(t, tt.want, summarize.Texts(got))
			for i, s := range got {
				assert.Equal(t, i, s.Position)
				assert.NotEmpty(t, strings.TrimSpace(s.Text))
			}
		})
	}
}

func TestSegment_Empty(t *testing.T) {
	assert.Empty(t, summarize.Segment(""))
	assert.Empty(t, summarize.Segment("   "))
}

/* ───────── Lexical filter ───────── */

func TestTokenize(t *testing.T) {
	stop := summarize.Stopwords()

	got := summarize.Tokenize("The quick brown fox jumps over the lazy dog.", stop)
	assert.Equal(t, []string{"quick", "brown", "fox", "jumps", "lazy", "dog"}, got)

	assert.Empty(t, summarize.Tokenize("Don't do it!", stop))
	assert.Equal(t, []string{"rust", "rust"}, summarize.Tokenize("Rust, rust.", stop))
}

func TestContentWords_DropsShortTokens(t *testing.T) {
	got := summarize.ContentWords("AI is an ox of big data", summarize.Stopwords())
	assert.Equal(t, []string{"big", "data"}, got)
}

func TestTokenize_EmptyStopwordSet(t *testing.T) {
	got := summarize.Tokenize("The cat", summarize.StopwordSet{})
	assert.Equal(t, []string{"the", "cat"}, got)
}

func TestParseStopwords(t *testing.T) {
	set := summarize.ParseStopwords(strings.NewReader("# comment\nThe\n\n  and \n"))
	assert.True(t, set.Contains("the"))
	assert.True(t, set.Contains("and"))
	assert.Len(t, set, 2)
}

func TestLoadStopwordsFile_Missing(t *testing.T) {
	_, err := summarize.LoadStopwordsFile("/nonexistent/stopwords.txt")
	require.Error(t, err)
}

func TestStopwords_EmbeddedList(t *testing.T) {
	stop := summarize.Stopwords()
	for _, w := range []string{"the", "and", "is", "wouldn't"} {
		assert.True(t, stop.Contains(w), w)
	}
	assert.False(t, stop.Contains("summary"))
}

/* ───────── Length policy ───────── */

func TestTargetSentences(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 2}, {99, 2}, {100, 3}, {499, 3}, {500, 5}, {999, 5}, {1000, 7}, {5000, 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, summarize.TargetSentences(tt.words), "words=%d", tt.words)
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, summarize.WordCount("  "))
	assert.Equal(t, 4, summarize.WordCount("one two\nthree\tfour"))
	assert.Equal(t, 2, summarize.WordCount("unit\x1fseparated"))
}
