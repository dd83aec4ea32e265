// Package tokens estimates token counts for generated text.
//
// Not every backend reports token usage: the transformers sidecar may
// omit it, and Ollama leaves eval counts at zero for some error paths.
// The estimator fills the gap with a character-ratio heuristic so that
// usage logging stays populated either way.
package tokens

import "unicode/utf8"

// DefaultCharsPerToken is the character-to-token ratio for Russian
// prose. Cyrillic text tokenizes denser than English under BPE
// vocabularies; ~3 characters per token is a reasonable middle ground
// for Qwen and Llama tokenizers.
const DefaultCharsPerToken = 3.0

// Estimator estimates token counts from rune counts.
type Estimator struct {
	// CharsPerToken is the average characters per token.
	// Zero or negative falls back to DefaultCharsPerToken.
	CharsPerToken float64
}

// Count estimates the number of tokens in text. Counts runes, not
// bytes, so multi-byte Cyrillic does not inflate the estimate.
func (e Estimator) Count(text string) int {
	ratio := e.CharsPerToken
	if ratio <= 0 {
		ratio = DefaultCharsPerToken
	}
	runes := utf8.RuneCountInString(text)
	return int(float64(runes)/ratio + 0.5)
}

// Estimate is a convenience wrapper using the default ratio.
func Estimate(text string) int {
	return Estimator{}.Count(text)
}
