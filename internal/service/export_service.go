package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"pukaist/internal/domain"
	"pukaist/internal/export"
	"pukaist/internal/port"
)

// ExportService renders a collection into a downloadable artifact, either
// inline or staged in object storage behind a presigned URL.
type ExportService interface {
	Export(ctx context.Context, tenantID, name string, opts domain.ExportOptions) (*domain.ExportResult, error)
}

type exportService struct {
	collections   port.CollectionRepository
	docRepo       port.DocumentRepository
	storage       port.ObjectStorage
	bucket        string
	presignExpiry int64
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	collections port.CollectionRepository,
	docRepo port.DocumentRepository,
	storage port.ObjectStorage,
	bucket string,
	presignExpiry int64,
) ExportService {
	return &exportService{
		collections:   collections,
		docRepo:       docRepo,
		storage:       storage,
		bucket:        bucket,
		presignExpiry: presignExpiry,
	}
}

func (s *exportService) Export(ctx context.Context, tenantID, name string, opts domain.ExportOptions) (*domain.ExportResult, error) {
	c, err := s.collections.GetByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}

	docs := s.resolveDocs(ctx, c)

	var (
		data        []byte
		ext         string
		contentType string
	)
	switch opts.Format {
	case domain.ExportFormatMarkdown:
		data = export.RenderMarkdown(c, docs, opts.IncludeSummary)
		ext, contentType = "md", "text/markdown; charset=utf-8"
	case domain.ExportFormatCSV:
		data, err = renderCSV(docs, opts.IncludeSummary)
		ext, contentType = "csv", "text/csv; charset=utf-8"
	case domain.ExportFormatHTML:
		data, err = export.RenderHTML(c, docs, opts.IncludeSummary)
		ext, contentType = "html", "text/html; charset=utf-8"
	case domain.ExportFormatXLSX:
		data, err = export.RenderXLSX(c, docs, opts.IncludeSummary)
		ext, contentType = "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, domain.ErrUnsupportedExportFmt
	}
	if err != nil {
		return nil, err
	}

	result := &domain.ExportResult{
		Filename:    fmt.Sprintf("%s-export-%s.%s", c.Name, time.Now().UTC().Format("20060102"), ext),
		ContentType: contentType,
		Data:        data,
	}

	if opts.Delivery == domain.ExportDeliveryURL {
		url, err := s.stage(ctx, tenantID, result)
		if err != nil {
			return nil, err
		}
		result.URL = url
		result.Data = nil
	}

	return result, nil
}

// resolveDocs looks up every document in the collection, skipping entries
// whose registry record is gone.
func (s *exportService) resolveDocs(ctx context.Context, c *domain.Collection) []domain.Document {
	docs := make([]domain.Document, 0, len(c.DocIDs))
	for _, idStr := range c.DocIDs {
		docID, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}
		doc, err := s.docRepo.GetByID(ctx, c.TenantID, docID)
		if err != nil {
			log.Printf("exportService.Export: skipping doc %s in %q: %v", idStr, c.Name, err)
			continue
		}
		docs = append(docs, *doc)
	}
	return docs
}

// stage uploads the artifact to object storage and presigns a download URL.
func (s *exportService) stage(ctx context.Context, tenantID string, result *domain.ExportResult) (string, error) {
	key := fmt.Sprintf("%s/exports/%s/%s", tenantID, uuid.New(), result.Filename)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(result.Data),
		ContentType: result.ContentType,
		Size:        int64(len(result.Data)),
	})
	if err != nil {
		return "", fmt.Errorf("exportService.Export: stage artifact: %w", err)
	}
	url, err := s.storage.GetPresignedURL(ctx, s.bucket, key, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("exportService.Export: presign artifact: %w", err)
	}
	return url, nil
}

func renderCSV(docs []domain.Document, includeSummary bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(export.BOM)
	w := export.NewWriter(&buf, includeSummary)
	if err := w.WriteHeader(); err != nil {
		return nil, err
	}
	if err := w.WriteDocuments(docs); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
