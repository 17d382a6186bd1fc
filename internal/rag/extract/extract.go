package extract

import (
	"regexp"
	"strings"

	"github.com/snipbot/ragservice/internal/domain/ragmodel"
)

// extractor turns raw bytes into plain text. Implementations must be pure:
// same bytes in, same text out, no clock and no locale.
type extractor func(content []byte) (string, error)

var strategies = map[ragmodel.FormatTag]extractor{
	ragmodel.FormatPDF:  extractPDF,
	ragmodel.FormatDOCX: extractDocx,
	ragmodel.FormatTXT:  extractTxt,
	ragmodel.FormatMD:   extractMarkdown,
	ragmodel.FormatHTML: extractHTML,
	ragmodel.FormatCSV:  extractCSV,
	ragmodel.FormatXLSX: extractWorkbook,
	ragmodel.FormatXLS:  extractWorkbook,
}

// Extract converts content into plain text for the declared format.
// An unknown tag is rejected before any parsing happens; a parse failure
// comes back as *ragmodel.ExtractionError and is terminal for the document.
func Extract(content []byte, format ragmodel.FormatTag) (string, error) {
	strategy, ok := strategies[format]
	if !ok {
		return "", ragmodel.ErrUnsupportedFormat
	}

	text, err := strategy(content)
	if err != nil {
		return "", &ragmodel.ExtractionError{Format: format, Err: err}
	}
	return text, nil
}

func extractTxt(content []byte) (string, error) {
	// Permissive decode: invalid byte sequences are replaced, never an error.
	return strings.ToValidUTF8(string(content), "�"), nil
}

var (
	mdHeader     = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdEmphasis   = regexp.MustCompile(`\*\*|\*|__|_`)
	mdImage      = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLink       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mdCodeFence  = regexp.MustCompile("(?m)^```[^\n]*$")
	mdInlineCode = regexp.MustCompile("`([^`]+)`")
)

func extractMarkdown(content []byte) (string, error) {
	text, _ := extractTxt(content)

	// Images go before links: the link pattern would otherwise keep alt text.
	text = mdImage.ReplaceAllString(text, "")
	text = mdLink.ReplaceAllString(text, "$1")
	text = mdHeader.ReplaceAllString(text, "")
	text = mdCodeFence.ReplaceAllString(text, "")
	text = mdInlineCode.ReplaceAllString(text, "$1")
	text = mdEmphasis.ReplaceAllString(text, "")

	return text, nil
}
