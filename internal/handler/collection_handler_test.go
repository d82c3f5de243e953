package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pukaist/internal/domain"
	"pukaist/internal/middleware"
	"pukaist/internal/service"
	"pukaist/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authedContext(t *testing.T, method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")

	c.Set(middleware.ContextKeyTenantID, "local")
	c.Set(middleware.ContextKeyUserID, domain.LocalUserID)
	c.Set(middleware.ContextKeyRole, string(domain.RoleAdmin))
	return c, w
}

func TestCollectionCreate_Success(t *testing.T) {
	svc := new(mocks.MockCollectionService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CollectionCreateInput) bool {
		return in.TenantID == "local" && in.Name == "treaty docs"
	})).Return(&domain.Collection{Name: "treaty docs", TenantID: "local"}, nil)

	h := NewCollectionHandler(svc, new(mocks.MockExportService))
	c, w := authedContext(t, http.MethodPost, "/collections", gin.H{"name": "treaty docs"})
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestCollectionCreate_BlankName(t *testing.T) {
	svc := new(mocks.MockCollectionService)
	h := NewCollectionHandler(svc, new(mocks.MockExportService))

	c, w := authedContext(t, http.MethodPost, "/collections", gin.H{"name": "   "})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create")
}

func TestCollectionGetByName_NotFound(t *testing.T) {
	svc := new(mocks.MockCollectionService)
	svc.On("GetByName", mock.Anything, "local", "missing").Return(nil, domain.ErrCollectionNotFound)

	h := NewCollectionHandler(svc, new(mocks.MockExportService))
	c, w := authedContext(t, http.MethodGet, "/collections/missing", nil)
	c.Params = gin.Params{{Key: "name", Value: "missing"}}
	h.GetByName(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "COLLECTION_NOT_FOUND", resp.Error.Code)
}

func TestCollectionExport_InlineCSV(t *testing.T) {
	exportSvc := new(mocks.MockExportService)
	exportSvc.On("Export", mock.Anything, "local", "springs", domain.ExportOptions{
		Format:         domain.ExportFormatCSV,
		IncludeSummary: true,
		Delivery:       domain.ExportDeliveryInline,
	}).Return(&domain.ExportResult{
		Filename:    "springs-export-20260423.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte("Document Name\n"),
	}, nil)

	h := NewCollectionHandler(new(mocks.MockCollectionService), exportSvc)
	c, w := authedContext(t, http.MethodPost, "/collections/springs/export", gin.H{
		"format":          "csv",
		"include_summary": true,
		"delivery":        "inline",
	})
	c.Params = gin.Params{{Key: "name", Value: "springs"}}
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "springs-export")
	assert.Equal(t, "Document Name\n", w.Body.String())
}

func TestCollectionExport_URLDelivery(t *testing.T) {
	exportSvc := new(mocks.MockExportService)
	exportSvc.On("Export", mock.Anything, "local", "springs", mock.Anything).Return(&domain.ExportResult{
		Filename: "springs-export-20260423.xlsx",
		URL:      "https://s3.example/artifact",
	}, nil)

	h := NewCollectionHandler(new(mocks.MockCollectionService), exportSvc)
	c, w := authedContext(t, http.MethodPost, "/collections/springs/export", gin.H{
		"format":   "xlsx",
		"delivery": "url",
	})
	c.Params = gin.Params{{Key: "name", Value: "springs"}}
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://s3.example/artifact")
}

func TestCollectionDelete_ReturnsUndoAction(t *testing.T) {
	actionID := uuid.New()
	svc := new(mocks.MockCollectionService)
	svc.On("Delete", mock.Anything, "local", "drafts", domain.LocalUserID).
		Return(&domain.UndoAction{ID: actionID, Message: `Collection "drafts" deleted`}, nil)

	h := NewCollectionHandler(svc, new(mocks.MockExportService))
	c, w := authedContext(t, http.MethodDelete, "/collections/drafts", nil)
	c.Params = gin.Params{{Key: "name", Value: "drafts"}}
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), actionID.String())
}
