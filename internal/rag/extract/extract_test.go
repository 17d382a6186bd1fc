package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/xuri/excelize/v2"

	"github.com/snipbot/ragservice/internal/domain/ragmodel"
)

func TestExtract_UnknownFormat(t *testing.T) {
	_, err := Extract([]byte("whatever"), ragmodel.FormatTag("exe"))
	if !errors.Is(err, ragmodel.ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtract_CorruptInputs(t *testing.T) {
	tests := []struct {
		name   string
		format ragmodel.FormatTag
		input  []byte
	}{
		{"Corrupt_PDF", ragmodel.FormatPDF, []byte("definitely not a pdf")},
		{"Corrupt_DOCX", ragmodel.FormatDOCX, []byte("not a zip archive")},
		{"Corrupt_Workbook", ragmodel.FormatXLS, []byte{0x00, 0x01, 0x02, 0x03}},
		{"Unbalanced_CSV_Quote", ragmodel.FormatCSV, []byte("a,b\n\"unclosed,c\nd,e")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.input, tt.format)
			var exErr *ragmodel.ExtractionError
			if !errors.As(err, &exErr) {
				t.Fatalf("got %v, want *ExtractionError", err)
			}
			if exErr.Format != tt.format {
				t.Errorf("error format got %s, want %s", exErr.Format, tt.format)
			}
		})
	}
}

func TestExtractTxt(t *testing.T) {
	got, err := extractTxt([]byte("hello world"))
	if err != nil || got != "hello world" {
		t.Fatalf("got %q (%v), want passthrough", got, err)
	}

	// Invalid byte sequences are replaced, never fatal.
	got, err = extractTxt([]byte{0xff, 'h', 'i'})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "\uFFFDhi" {
		t.Errorf("got %q, want replacement char then hi", got)
	}
}

func TestExtractMarkdown(t *testing.T) {
	input := "# Title\n\nSee [the docs](https://example.com) and ![logo](logo.png) here.\n\n" +
		"**bold** _quiet_ and `inline code` stay.\n\n" +
		"```go\nreturn nil\n```\n"

	got, err := extractMarkdown([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantContains := []string{"Title", "See the docs and", "bold quiet and inline code stay", "return nil"}
	for _, want := range wantContains {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	wantGone := []string{"#", "](", "logo.png", "**", "`", "```go"}
	for _, gone := range wantGone {
		if strings.Contains(got, gone) {
			t.Errorf("output still has %q:\n%s", gone, got)
		}
	}
}

func TestExtractMarkdown_Deterministic(t *testing.T) {
	input := []byte("## Heading\n\nSome [link](url) with **weight**.")
	first, _ := extractMarkdown(input)
	second, _ := extractMarkdown(input)
	if first != second {
		t.Errorf("same bytes produced different text:\n%q\n%q", first, second)
	}
}

func TestExtractHTML(t *testing.T) {
	input := []byte(`<html><head><title>T</title><style>p{color:red}</style>` +
		`<script>var x = 1;</script></head>` +
		`<body><h1>Hello</h1><p>World &amp; peace</p></body></html>`)

	got, err := extractHTML(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "T Hello World & peace" {
		t.Errorf("got %q", got)
	}
	if strings.Contains(got, "var x") || strings.Contains(got, "color:red") {
		t.Errorf("script/style content leaked: %q", got)
	}
}

func TestStripTags(t *testing.T) {
	input := []byte(`<p>Plain <b>bold</b></p><script>alert(1)</script>`)
	got := stripTags(input)
	if got != "Plain bold" {
		t.Errorf("got %q, want %q", got, "Plain bold")
	}
}

func TestExtractCSV(t *testing.T) {
	input := []byte("name,price\nwidget,9.99\n")
	got, err := extractCSV(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "name | price\nwidget | 9.99"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractCSV_RaggedAndEmptyCells(t *testing.T) {
	input := []byte("a,b,c\nd,,e\nf\n")
	got, err := extractCSV(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "a | b | c\nd | e\nf"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractWorkbook(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "name")
	f.SetCellValue("Sheet1", "B1", "price")
	f.SetCellValue("Sheet1", "A2", "widget")
	f.SetCellValue("Sheet1", "B2", "9.99")

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("building workbook: %v", err)
	}

	got, err := extractWorkbook(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Row 1: name | price\nRow 2: widget | 9.99"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractWorkbook_XLSXTagThroughDispatch(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "only cell")
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("building workbook: %v", err)
	}

	got, err := Extract(buf.Bytes(), ragmodel.FormatXLSX)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Row 1: only cell" {
		t.Errorf("got %q", got)
	}
}

// buildTwoPagePDF assembles a minimal file by hand: page one carries text,
// page two is blank. Object offsets for the xref table are computed while
// writing, the same way the workbook fixtures are built instead of checked in.
func buildTwoPagePDF(text string) []byte {
	var buf bytes.Buffer
	var offsets []int
	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	addObj("2 0 obj\n<< /Type /Pages /Kids [3 0 R 5 0 R] /Count 2 >>\nendobj\n")
	addObj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 6 0 R >>\nendobj\n")
	addObj("4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n")
	addObj("5 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> /Contents 7 0 R >>\nendobj\n")
	addObj(fmt.Sprintf("6 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream))
	addObj("7 0 obj\n<< /Length 0 >>\nstream\n\nendstream\nendobj\n")

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefOffset)
	return buf.Bytes()
}

func TestExtractPDF(t *testing.T) {
	const want = "Hello from the first page."
	content := buildTwoPagePDF(want)

	got, err := Extract(content, ragmodel.FormatPDF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, want) {
		t.Errorf("got %q, want text containing %q", got, want)
	}
	if strings.Contains(got, "\n") {
		t.Errorf("blank page contributed text: %q", got)
	}
}

func TestExtractDocx(t *testing.T) {
	w := docx.New().WithDefaultTheme()
	w.AddParagraph().AddText("First paragraph of the fixture.")
	w.AddParagraph().AddText("Second paragraph of the fixture.")

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("building docx: %v", err)
	}

	got, err := Extract(buf.Bytes(), ragmodel.FormatDOCX)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"First paragraph of the fixture.", "Second paragraph of the fixture."} {
		if !strings.Contains(got, want) {
			t.Errorf("got %q, want text containing %q", got, want)
		}
	}
}

func TestExtractWorkbook_RowNumbersFollowSheetPosition(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "first")
	f.SetCellValue("Sheet1", "A3", "third")

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("building workbook: %v", err)
	}

	got, err := extractWorkbook(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Numbering follows sheet position; the empty row is skipped but counted.
	want := "Row 1: first\nRow 3: third"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
