package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"pukaist/internal/domain"
)

// RenderXLSX writes the collection documents to a single-sheet workbook.
func RenderXLSX(c *domain.Collection, docs []domain.Document, includeSummary bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Documents"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("export.RenderXLSX: %w", err)
	}

	header := columns
	if !includeSummary {
		header = columns[:len(columns)-1]
	}
	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export.RenderXLSX: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, fmt.Errorf("export.RenderXLSX: %w", err)
		}
	}

	for i := range docs {
		d := &docs[i]
		values := []interface{}{
			d.Filename,
			d.Theme,
			string(d.Status),
			d.ContentType,
			d.UploadedBy.String(),
			d.CreatedAt.Format(time.RFC3339),
		}
		if includeSummary {
			values = append(values, d.Summary)
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("export.RenderXLSX: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("export.RenderXLSX: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export.RenderXLSX: %w", err)
	}
	return buf.Bytes(), nil
}
