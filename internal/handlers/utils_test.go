package handlers

import (
	"testing"

	"github.com/snipbot/ragservice/internal/domain/ragmodel"
	"github.com/snipbot/ragservice/pkg/logger_i"
)

func init() {
	logRH = logger_i.NewLogger("TestRequestHandler")
}

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     ragmodel.FormatTag
		ok       bool
	}{
		{"handbook.pdf", ragmodel.FormatPDF, true},
		{"notes.TXT", ragmodel.FormatTXT, true},
		{"report.final.docx", ragmodel.FormatDOCX, true},
		{"sheet.xlsx", ragmodel.FormatXLSX, true},
		{"legacy.xls", ragmodel.FormatXLS, true},
		{"page.html", ragmodel.FormatHTML, true},
		{"data.csv", ragmodel.FormatCSV, true},
		{"readme.md", ragmodel.FormatMD, true},
		{"archive.zip", "", false},
		{"noextension", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := formatFromFilename(tt.filename)
		if got != tt.want || ok != tt.ok {
			t.Errorf("formatFromFilename(%q) = (%q, %v), want (%q, %v)", tt.filename, got, ok, tt.want, tt.ok)
		}
	}
}
