package summarize

// FrequencyScores scores each sentence by the summed normalized frequency of
// its content words, duplicates included. Word frequency is divided by the
// highest frequency in the document.
//
// Sentences without content words get no entry. When no content word
// survives filtering the map is empty, which makes Select take the first K
// sentences in document order.
func FrequencyScores(sentences []Sentence, stop StopwordSet) ScoreMap {
	words := make([][]string, len(sentences))
	counts := map[string]int{}
	for i, s := range sentences {
		words[i] = ContentWords(s.Text, stop)
		for _, w := range words[i] {
			counts[w]++
		}
	}

	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}

	scores := ScoreMap{}
	if maxCount == 0 {
		return scores
	}
	for i, ws := range words {
		if len(ws) == 0 {
			continue
		}
		score := 0.0
		for _, w := range ws {
			score += float64(counts[w]) / float64(maxCount)
		}
		scores[sentences[i].Position] = score
	}
	return scores
}
