package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pukaist/internal/domain"
)

func sampleDocs() []domain.Document {
	return []domain.Document{
		{
			ID:          uuid.New(),
			TenantID:    "local",
			UploadedBy:  uuid.New(),
			Filename:    "deed-1891.pdf",
			ContentType: "application/pdf",
			Theme:       "land",
			Status:      domain.DocumentStatusProcessed,
			Summary:     "Allotment deed, surveyed 1891.",
			CreatedAt:   time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:          uuid.New(),
			TenantID:    "local",
			UploadedBy:  uuid.New(),
			Filename:    "creek-map.png",
			ContentType: "image/png",
			Theme:       "water",
			Status:      domain.DocumentStatusUploaded,
			CreatedAt:   time.Date(2026, 4, 3, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 7)
	assert.Equal(t, "Document Name", row[0])
	assert.Equal(t, "Summary", row[6])
}

func TestWriteHeader_NoSummary(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, false)
	require.NoError(t, w.WriteHeader())
	w.Flush()

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)
	assert.Len(t, row, 6)
	assert.NotContains(t, row, "Summary")
}

func TestWriteDocuments(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteDocuments(sampleDocs()))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "deed-1891.pdf", rows[1][0])
	assert.Equal(t, "land", rows[1][1])
	assert.Equal(t, "processed", rows[1][2])
	assert.Equal(t, "2026-04-02T10:00:00Z", rows[1][5])
	assert.Equal(t, "Allotment deed, surveyed 1891.", rows[1][6])
	assert.Empty(t, rows[2][6])
}
