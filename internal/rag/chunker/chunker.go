package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/snipbot/ragservice/internal/config"
)

// Options control chunk packing. Sizes count characters, not tokens or bytes.
type Options struct {
	TargetSize   int
	Overlap      int
	MinChunkSize int
}

func DefaultOptions() Options {
	return Options{
		TargetSize:   config.ChunkTargetSize,
		Overlap:      config.ChunkOverlap,
		MinChunkSize: config.MinChunkSize,
	}
}

// Split cuts text into overlapping, semantically bounded chunks. The split
// strategy is chosen once for the whole document: blank-line paragraphs,
// then single newlines, then sentence boundaries. It never fails; empty or
// whitespace-only input yields nil.
func Split(text string, opts Options) []string {
	if opts.TargetSize <= 0 {
		opts.TargetSize = config.ChunkTargetSize
	}
	if opts.Overlap < 0 {
		opts.Overlap = 0
	}
	if opts.Overlap >= opts.TargetSize {
		opts.Overlap = opts.TargetSize - 1
	}

	paragraphs := segment(text)
	if len(paragraphs) == 0 {
		return nil
	}

	var chunks []string
	var current string

	for _, para := range paragraphs {
		if runeLen(current)+runeLen(para)+1 < opts.TargetSize {
			if current == "" {
				current = para
			} else {
				current += " " + para
			}
			continue
		}

		if current != "" {
			chunks = append(chunks, strings.TrimSpace(current))
		}

		if runeLen(para) > opts.TargetSize {
			// A paragraph is never truncated: re-split it at sentence
			// boundaries and pack those. No overlap seeding inside the
			// re-split, the sentences already run contiguously.
			current = packSentences(para, opts.TargetSize, &chunks)
			continue
		}

		if len(chunks) > 0 && opts.Overlap > 0 {
			current = overlapTail(chunks[len(chunks)-1], opts.Overlap) + " " + para
		} else {
			current = para
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	// Artifact filter: headers, stray list bullets, page numbers.
	kept := chunks[:0]
	for _, c := range chunks {
		if runeLen(c) >= opts.MinChunkSize {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// segment picks the split strategy for the document.
func segment(text string) []string {
	var paragraphs []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(strings.ReplaceAll(para, "\n", " "))
		if para != "" {
			paragraphs = append(paragraphs, para)
		}
	}

	if len(paragraphs) <= 1 {
		paragraphs = paragraphs[:0]
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				paragraphs = append(paragraphs, line)
			}
		}
	}

	if len(paragraphs) <= 1 {
		paragraphs = paragraphs[:0]
		flat := strings.ReplaceAll(text, "\n", " ")
		for _, sentence := range strings.Split(flat, ". ") {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" {
				continue
			}
			if !strings.HasSuffix(sentence, ".") {
				sentence += "."
			}
			paragraphs = append(paragraphs, sentence)
		}
	}

	return paragraphs
}

func packSentences(para string, targetSize int, chunks *[]string) string {
	var current string
	for _, sentence := range strings.Split(para, ". ") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if !strings.HasSuffix(sentence, ".") {
			sentence += "."
		}

		if runeLen(current)+runeLen(sentence)+1 < targetSize {
			if current == "" {
				current = sentence
			} else {
				current += " " + sentence
			}
			continue
		}
		if current != "" {
			*chunks = append(*chunks, current)
		}
		current = sentence
	}
	return current
}

// runeLen is the size measure for every budget in this package. Counting
// characters instead of bytes keeps multibyte text from shrinking the
// effective chunk size.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// overlapTail returns the last overlap characters of chunk, never cutting
// through a multibyte rune.
func overlapTail(chunk string, overlap int) string {
	runes := []rune(chunk)
	if len(runes) <= overlap {
		return chunk
	}
	return string(runes[len(runes)-overlap:])
}
