package summarize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopwordState_UnreadableFileFallsBackToEmptySet(t *testing.T) {
	var st stopwordState
	err := st.load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	set := st.get()
	assert.NotNil(t, set)
	assert.Empty(t, set)
	// 2 回目以降は再読み込みしない
	assert.ErrorIs(t, st.load(""), ErrStopwordsInitialized)
	assert.Empty(t, st.get())
}

func TestStopwordState_EmptySetStillTokenizes(t *testing.T) {
	var st stopwordState
	_ = st.load("/nonexistent/stopwords.txt")
	assert.Equal(t, []string{"the", "cat"}, Tokenize("The cat", st.get()))
}

func TestStopwordState_LoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nBeta\n"), 0o600))

	var st stopwordState
	require.NoError(t, st.load(path))
	assert.True(t, st.get().Contains("beta"))
	assert.False(t, st.get().Contains("the"))
}

func TestStopwordState_GetBeforeLoadUsesEmbeddedList(t *testing.T) {
	var st stopwordState
	assert.True(t, st.get().Contains("the"))
	assert.ErrorIs(t, st.load("/ignored"), ErrStopwordsInitialized)
}
