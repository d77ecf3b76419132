package splitter

import (
	"strings"
	"unicode"
)

// sentenceTerminators end a sentence when followed by whitespace.
var sentenceTerminators = map[rune]bool{
	'.': true,
	'!': true,
	'?': true,
	'。': true,
	'！': true,
	'？': true,
}

// SplitSentences splits text into trimmed sentences. A sentence ends at
// a terminator rune followed by whitespace, or at end of input. Text
// with no terminators comes back as a single sentence. Whitespace-only
// input yields nil.
func SplitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		cur.WriteRune(r)
		if !sentenceTerminators[r] {
			continue
		}
		// Terminator at end of input or before whitespace closes the sentence.
		if i == len(runes)-1 || unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(cur.String()); s != "" {
				sentences = append(sentences, s)
			}
			cur.Reset()
		}
	}

	if s := strings.TrimSpace(cur.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
