package ragmodel

// FormatTag identifies a supported document format. Tags are the lowercase
// strings the upload edge records for a document; nothing else is accepted.
type FormatTag string

const (
	FormatPDF  FormatTag = "pdf"
	FormatDOCX FormatTag = "docx"
	FormatTXT  FormatTag = "txt"
	FormatMD   FormatTag = "md"
	FormatHTML FormatTag = "html"
	FormatCSV  FormatTag = "csv"
	FormatXLSX FormatTag = "xlsx"
	FormatXLS  FormatTag = "xls"
)

// SupportedFormats is the closed set the extractor dispatches over.
func SupportedFormats() []FormatTag {
	return []FormatTag{
		FormatPDF, FormatDOCX, FormatTXT, FormatMD,
		FormatHTML, FormatCSV, FormatXLSX, FormatXLS,
	}
}

// IngestRequest is everything the pipeline needs for one document. The
// document registry hands these over; the pipeline never looks anything up.
type IngestRequest struct {
	TenantID   string
	DocumentID string
	Filename   string
	Format     FormatTag
	Content    []byte
}

// Chunk is one retrievable span of a document's extracted text. Chunks are
// immutable once built; a reprocess replaces the whole set for a document.
type Chunk struct {
	ID         string `json:"chunk_id"`
	TenantID   string `json:"tenant_id"`
	DocumentID string `json:"doc_id"`
	Filename   string `json:"filename"`
	Ordinal    int    `json:"chunk_index"`
	Text       string `json:"content"`
}

// Match is a retrieved chunk with its cosine distance to the query
// (lower is closer).
type Match struct {
	Text     string
	Filename string
	Distance float32
}
