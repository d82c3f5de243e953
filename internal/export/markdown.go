package export

import (
	"fmt"
	"strings"
	"time"

	"pukaist/internal/domain"
)

// RenderMarkdown composes the collection export as a Markdown document: a
// title block, an index table, and an optional per-document summary section.
func RenderMarkdown(c *domain.Collection, docs []domain.Document, includeSummary bool) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", c.Name)
	if c.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", c.Description)
	}
	fmt.Fprintf(&b, "Exported %s. %d document(s).\n\n",
		time.Now().UTC().Format("2006-01-02"), len(docs))

	b.WriteString("| Document | Theme | Status | Uploaded At |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for i := range docs {
		d := &docs[i]
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			escapeCell(d.Filename), escapeCell(d.Theme), d.Status,
			d.CreatedAt.Format(time.RFC3339))
	}
	b.WriteString("\n")

	if includeSummary {
		for i := range docs {
			d := &docs[i]
			if d.Summary == "" {
				continue
			}
			fmt.Fprintf(&b, "## %s\n\n%s\n\n", d.Filename, d.Summary)
		}
	}

	return []byte(b.String())
}

// escapeCell keeps pipe characters from breaking the table layout.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
