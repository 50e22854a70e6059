package summarize

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

//go:embed stopwords/english.txt
var englishStopwords string

// StopwordSet is a read-only set of lower-cased stopwords.
type StopwordSet map[string]struct{}

// Contains reports whether word (already lower-cased) is a stopword.
func (s StopwordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// stopwordState is a set that is loaded at most once.
type stopwordState struct {
	once sync.Once
	set  StopwordSet
	err  error
}

// get returns the set, loading the embedded list if nothing was loaded yet.
func (st *stopwordState) get() StopwordSet {
	st.once.Do(func() {
		st.set = ParseStopwords(strings.NewReader(englishStopwords))
	})
	return st.set
}

// load fills st from path, or from the embedded list when path is empty. A
// file that cannot be read leaves st holding the empty set and the error.
func (st *stopwordState) load(path string) error {
	ran := false
	st.once.Do(func() {
		ran = true
		if path == "" {
			st.set = ParseStopwords(strings.NewReader(englishStopwords))
			return
		}
		if st.set, st.err = LoadStopwordsFile(path); st.err != nil {
			st.set = StopwordSet{}
		}
	})
	if !ran {
		return ErrStopwordsInitialized
	}
	return st.err
}

var processStopwords stopwordState

// ErrStopwordsInitialized is returned by InitStopwords after the
// process-wide set has already been loaded.
var ErrStopwordsInitialized = errors.New("stopwords already initialized")

// Stopwords returns the process-wide stopword set. The embedded English list
// is loaded on first use unless InitStopwords ran earlier.
func Stopwords() StopwordSet {
	return processStopwords.get()
}

// InitStopwords loads the process-wide stopword set from path. An empty path
// selects the embedded English list. If the file cannot be read the set is
// initialized empty and the read error is returned so the caller can log it;
// summarization keeps working without stopword filtering.
//
// It must be called before the first call to Stopwords.
func InitStopwords(path string) error {
	return processStopwords.load(path)
}

// LoadStopwordsFile reads a newline separated stopword list.
func LoadStopwordsFile(path string) (StopwordSet, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("LoadStopwordsFile: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseStopwords(f), nil
}

// ParseStopwords reads one word per line. Blank lines and lines starting
// with '#' are ignored. Words are lower-cased.
func ParseStopwords(r io.Reader) StopwordSet {
	set := StopwordSet{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
