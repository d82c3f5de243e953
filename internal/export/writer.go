package export

import (
	"encoding/csv"
	"io"
	"time"

	"pukaist/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Document Name",
	"Theme",
	"Status",
	"Content Type",
	"Uploaded By",
	"Uploaded At",
	"Summary",
}

// Writer wraps csv.Writer for exporting collection documents as CSV.
type Writer struct {
	csv            *csv.Writer
	includeSummary bool
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer, includeSummary bool) *Writer {
	return &Writer{csv: csv.NewWriter(w), includeSummary: includeSummary}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(w.header())
}

// WriteDocuments converts a batch of documents to CSV rows and writes them.
func (w *Writer) WriteDocuments(docs []domain.Document) error {
	for i := range docs {
		row := documentToRow(&docs[i], w.includeSummary)
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func (w *Writer) header() []string {
	if w.includeSummary {
		return columns
	}
	return columns[:len(columns)-1]
}

func documentToRow(doc *domain.Document, includeSummary bool) []string {
	row := []string{
		doc.Filename,
		doc.Theme,
		string(doc.Status),
		doc.ContentType,
		doc.UploadedBy.String(),
		doc.CreatedAt.Format(time.RFC3339),
	}
	if includeSummary {
		row = append(row, doc.Summary)
	}
	return row
}
