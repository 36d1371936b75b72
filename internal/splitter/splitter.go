// Package splitter provides recursive character-based text splitting for chunking.
package splitter

import "strings"

// Separator priority: paragraph break, line break, sentence terminator,
// space, then hard character split as a last resort.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter splits text into overlapping chunks of roughly chunkSize characters.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
}

// New creates a splitter with the given size and overlap (in characters).
func New(chunkSize, chunkOverlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 5
	}
	return &Splitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// Split splits text into chunks. It picks the highest-priority separator
// present in the text, splits on it, recursively re-splits fragments that
// are still over the chunk size with the remaining separators, and merges
// small fragments into windows no larger than chunkSize with the trailing
// chunkOverlap characters carried into the next window.
// Whitespace-only text yields no chunks.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.split(text, separators)
}

func (s *Splitter) split(text string, seps []string) []string {
	sep := seps[len(seps)-1]
	var rest []string
	for i, candidate := range seps {
		if candidate == "" || strings.Contains(text, candidate) {
			sep = candidate
			rest = seps[i+1:]
			break
		}
	}

	parts := strings.Split(text, sep)
	splits := parts[:0]
	for _, p := range parts {
		if p != "" {
			splits = append(splits, p)
		}
	}

	var final []string
	var pending []string
	for _, piece := range splits {
		if len(piece) < s.chunkSize {
			pending = append(pending, piece)
			continue
		}
		if len(pending) > 0 {
			final = append(final, s.merge(pending, sep)...)
			pending = nil
		}
		if len(rest) == 0 {
			final = append(final, piece)
		} else {
			final = append(final, s.split(piece, rest)...)
		}
	}
	if len(pending) > 0 {
		final = append(final, s.merge(pending, sep)...)
	}
	return final
}

// merge combines small fragments into chunks up to chunkSize, keeping the
// trailing fragments whose combined length is within chunkOverlap as the
// start of the following chunk.
func (s *Splitter) merge(splits []string, sep string) []string {
	sepLen := len(sep)
	var chunks []string
	var current []string
	total := 0
	for _, piece := range splits {
		l := len(piece)
		joinLen := 0
		if len(current) > 0 {
			joinLen = sepLen
		}
		if total+l+joinLen > s.chunkSize && len(current) > 0 {
			if chunk := strings.TrimSpace(strings.Join(current, sep)); chunk != "" {
				chunks = append(chunks, chunk)
			}
			for len(current) > 0 &&
				(total > s.chunkOverlap || (total+l+sepLen > s.chunkSize && total > 0)) {
				drop := len(current[0])
				if len(current) > 1 {
					drop += sepLen
				}
				total -= drop
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += l
		if len(current) > 1 {
			total += sepLen
		}
	}
	if chunk := strings.TrimSpace(strings.Join(current, sep)); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}
