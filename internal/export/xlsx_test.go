package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRenderXLSX(t *testing.T) {
	out, err := RenderXLSX(sampleCollection(), sampleDocs(), true)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Documents")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Document Name", rows[0][0])
	assert.Equal(t, "deed-1891.pdf", rows[1][0])
	assert.Equal(t, "creek-map.png", rows[2][0])
}
