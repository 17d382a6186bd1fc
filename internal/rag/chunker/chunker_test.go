package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func paragraphOf(n int) string {
	return strings.Repeat("a", n)
}

func TestSplit_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\n  \t "} {
		if got := Split(input, DefaultOptions()); got != nil {
			t.Errorf("Split(%q) = %v, want nil", input, got)
		}
	}
}

func TestSplit_SingleShortDocument(t *testing.T) {
	text := "This is a single paragraph well under the target size for a chunk."
	got := Split(text, DefaultOptions())
	if len(got) != 1 {
		t.Fatalf("got %d chunks, want 1", len(got))
	}
	if got[0] != text {
		t.Errorf("chunk altered: %q", got[0])
	}
}

func TestSplit_ThreeParagraphsWithOverlap(t *testing.T) {
	opts := DefaultOptions()
	p1 := paragraphOf(1333)
	p2 := strings.Repeat("b", 1333)
	p3 := strings.Repeat("c", 1333)
	text := p1 + "\n\n" + p2 + "\n\n" + p3

	got := Split(text, opts)
	if len(got) != 3 {
		t.Fatalf("got %d chunks, want 3", len(got))
	}
	if got[0] != p1 {
		t.Errorf("chunk 0 is not the first paragraph")
	}

	// Each later chunk starts with the tail of its predecessor.
	for i := 1; i < len(got); i++ {
		tail := got[i-1][len(got[i-1])-opts.Overlap:]
		if !strings.HasPrefix(got[i], tail) {
			t.Errorf("chunk %d does not start with the previous chunk's tail", i)
		}
	}
}

func TestSplit_ChunkSizeBound(t *testing.T) {
	opts := DefaultOptions()
	var parts []string
	for i := 0; i < 40; i++ {
		parts = append(parts, paragraphOf(700+i*13%700))
	}
	text := strings.Join(parts, "\n\n")

	// A chunk may carry at most one overlap tail on top of the packed target.
	bound := opts.TargetSize + opts.Overlap + 1
	for i, c := range Split(text, opts) {
		if len(c) > bound {
			t.Errorf("chunk %d has %d chars, bound is %d", i, len(c), bound)
		}
	}
}

func TestSplit_OversizeParagraphResplitAtSentences(t *testing.T) {
	opts := Options{TargetSize: 100, Overlap: 20, MinChunkSize: 10}
	sentence := "This sentence carries about forty characters."
	para := strings.TrimSpace(strings.Repeat(sentence+" ", 10))

	got := Split(para, opts)
	if len(got) < 2 {
		t.Fatalf("oversize paragraph was not re-split: %d chunks", len(got))
	}
	for i, c := range got {
		if len(c) > opts.TargetSize+opts.Overlap+1 {
			t.Errorf("chunk %d too large: %d chars", i, len(c))
		}
	}
}

func TestSplit_MinChunkFilter(t *testing.T) {
	if got := Split("tiny", DefaultOptions()); got != nil {
		t.Errorf("fragment below the minimum survived: %v", got)
	}

	// One keeper next to droppable noise: only the keeper remains.
	keeper := paragraphOf(80)
	got := Split(keeper+"\n\nok", DefaultOptions())
	if len(got) != 1 || got[0] != keeper+" ok" {
		// both paragraphs pack into one chunk; combined they pass the filter
		t.Errorf("got %v", got)
	}
}

func TestSplit_SingleLineFallsBackToSentences(t *testing.T) {
	opts := Options{TargetSize: 60, Overlap: 0, MinChunkSize: 10}
	text := "First sentence here. Second sentence here. Third sentence here."
	got := Split(text, opts)
	if len(got) < 2 {
		t.Fatalf("sentence fallback did not engage: %v", got)
	}
	for _, c := range got {
		if !strings.HasSuffix(c, ".") {
			t.Errorf("sentence chunk lost its terminator: %q", c)
		}
	}
}

func TestSplit_OverlapClampedBelowTarget(t *testing.T) {
	opts := Options{TargetSize: 50, Overlap: 500, MinChunkSize: 1}
	text := paragraphOf(40) + "\n\n" + paragraphOf(40) + "\n\n" + paragraphOf(40)
	got := Split(text, opts)
	if len(got) == 0 {
		t.Fatal("no chunks")
	}
	// Degenerate overlap must not stall packing or produce runaway chunks.
	for i, c := range got {
		if len(c) > opts.TargetSize*2 {
			t.Errorf("chunk %d ballooned to %d chars", i, len(c))
		}
	}
}

func TestSplit_MultibyteOverlapKeepsRunesIntact(t *testing.T) {
	opts := Options{TargetSize: 450, Overlap: 100, MinChunkSize: 10}
	para := strings.Repeat("あいうえお", 80)
	text := para + "\n\n" + para + "\n\n" + para

	got := Split(text, opts)
	if len(got) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(got))
	}
	for i, c := range got {
		if !utf8.ValidString(c) {
			t.Fatalf("chunk %d is not valid UTF-8: %q", i, c[:12])
		}
	}

	prev := []rune(got[0])
	tail := string(prev[len(prev)-opts.Overlap:])
	if !strings.HasPrefix(got[1], tail) {
		t.Errorf("chunk 1 does not start with the %d-character tail of chunk 0", opts.Overlap)
	}
}

func TestSplit_SizesCountCharactersNotBytes(t *testing.T) {
	opts := Options{TargetSize: 500, Overlap: 0, MinChunkSize: 1}
	// 400 + 50 characters pack into one chunk; the first paragraph alone is
	// 800 bytes, so byte counting would split them.
	text := strings.Repeat("é", 400) + "\n\n" + strings.Repeat("x", 50)

	got := Split(text, opts)
	if len(got) != 1 {
		t.Fatalf("got %d chunks, want 1", len(got))
	}
	if n := utf8.RuneCountInString(got[0]); n != 451 {
		t.Errorf("chunk has %d characters, want 451", n)
	}
}
