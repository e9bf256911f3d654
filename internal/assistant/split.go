package assistant

import (
	"strings"
	"unicode/utf8"
)

const (
	passageSize    = 1000 // target passage size in characters
	passageOverlap = 200
)

// splitPassages breaks extracted document text into indexable spans,
// preferring paragraph and sentence boundaries over hard cuts.
func splitPassages(text string) []string {
	parts := splitRecursive(text, []string{"\n\n", "\n", ". ", " "}, passageSize)

	var out []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func splitRecursive(text string, separators []string, size int) []string {
	if utf8.RuneCountInString(text) <= size {
		return []string{text}
	}

	if len(separators) == 0 {
		return splitFixed(text, size)
	}

	sep := separators[0]
	pieces := strings.Split(text, sep)

	var out []string
	var current strings.Builder
	for _, piece := range pieces {
		candidate := piece
		if current.Len() > 0 {
			candidate = current.String() + sep + piece
		}
		if utf8.RuneCountInString(candidate) <= size {
			current.Reset()
			current.WriteString(candidate)
			continue
		}
		if current.Len() > 0 {
			out = append(out, current.String())
			current.Reset()
		}
		if utf8.RuneCountInString(piece) > size {
			out = append(out, splitRecursive(piece, separators[1:], size)...)
		} else {
			current.WriteString(piece)
		}
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

func splitFixed(text string, size int) []string {
	runes := []rune(text)
	step := size - passageOverlap
	if step <= 0 {
		step = size
	}

	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}

// estimateTokens gives a rough token count, about 4/3 of the word count
// for English text.
func estimateTokens(text string) int {
	n := len(strings.Fields(text)) * 4 / 3
	if n < 1 {
		return 1
	}
	return n
}
