// Package prompt builds the generation instruction from topic keywords.
//
// The instruction is fixed Russian text asking the model for an article
// that uses all the given words, structured with '#' markers so the
// article parser can recognize the title, sections, and conclusion.
package prompt

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// KeywordCount is the exact number of topic words a prompt is built from.
const KeywordCount = 5

// ErrKeywordCount is returned when the keyword list has the wrong length.
var ErrKeywordCount = errors.New("wrong keyword count")

// instructionTemplate is the generation instruction. The marker structure
// it requests ("#заголовком, #абзацами и #выводом") is what the article
// parser expects back.
const instructionTemplate = `Напиши информативную и логичную статью на русском языке используя все слова из: {{join .Keywords " "}}. Структурируй текст обособленными #заголовком, #абзацами и #выводом. Пиши только текст статьи.`

var instructionTmpl = template.Must(template.New("instruction").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(instructionTemplate))

// Build renders the generation instruction for exactly KeywordCount
// keywords. Returns ErrKeywordCount otherwise.
func Build(keywords []string) (string, error) {
	if len(keywords) != KeywordCount {
		return "", fmt.Errorf("%w: need exactly %d words, got %d", ErrKeywordCount, KeywordCount, len(keywords))
	}

	var sb strings.Builder
	data := struct{ Keywords []string }{Keywords: keywords}
	if err := instructionTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render instruction: %w", err)
	}
	return sb.String(), nil
}

// SplitKeywords splits a raw prompt string into exactly KeywordCount
// whitespace-separated tokens. Returns ErrKeywordCount for any other
// token count.
func SplitKeywords(raw string) ([]string, error) {
	words := strings.Fields(raw)
	if len(words) != KeywordCount {
		return nil, fmt.Errorf("%w: need exactly %d words, got %d", ErrKeywordCount, KeywordCount, len(words))
	}
	return words, nil
}
