package export

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"pukaist/internal/domain"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// RenderHTML renders the Markdown export to a standalone HTML page.
func RenderHTML(c *domain.Collection, docs []domain.Document, includeSummary bool) ([]byte, error) {
	source := RenderMarkdown(c, docs, includeSummary)

	var body bytes.Buffer
	if err := md.Convert(source, &body); err != nil {
		return nil, fmt.Errorf("export.RenderHTML: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", c.Name)
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
