package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"pukaist/internal/config"
	"pukaist/internal/domain"
	"pukaist/internal/port"
)

// SignedURLInput is the request for a presigned upload URL.
type SignedURLInput struct {
	TenantID    string
	UserID      uuid.UUID
	Filename    string
	ContentType string
	Theme       string
	SizeBytes   int64
	ExpiresIn   int64 // seconds, zero means the configured default
}

// SignedURLResult carries the presigned PUT URL and the session handle the
// client echoes back on completion.
type SignedURLResult struct {
	UploadID  uuid.UUID `json:"upload_id"`
	UploadURL string    `json:"upload_url"`
	S3Key     string    `json:"s3_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CompleteResult ties the registered document to its processing job.
type CompleteResult struct {
	DocID uuid.UUID `json:"doc_id"`
	JobID uuid.UUID `json:"job_id"`
}

// UploadService implements the two-phase signed-URL upload flow: issue a
// presigned PUT, then register the document and enqueue a processing job once
// the client confirms the upload landed.
type UploadService interface {
	SignedURL(ctx context.Context, input SignedURLInput) (*SignedURLResult, error)
	Complete(ctx context.Context, tenantID string, uploadID uuid.UUID) (*CompleteResult, error)
}

type uploadService struct {
	kv       port.KeyValueStore
	storage  port.ObjectStorage
	docRepo  port.DocumentRepository
	jobRepo  port.JobRepository
	pipeline PipelineService
	cfg      config.UploadConfig
	bucket   string
}

// NewUploadService creates a new UploadService implementation.
func NewUploadService(
	kv port.KeyValueStore,
	storage port.ObjectStorage,
	docRepo port.DocumentRepository,
	jobRepo port.JobRepository,
	pipeline PipelineService,
	cfg config.UploadConfig,
	bucket string,
) UploadService {
	return &uploadService{
		kv:       kv,
		storage:  storage,
		docRepo:  docRepo,
		jobRepo:  jobRepo,
		pipeline: pipeline,
		cfg:      cfg,
		bucket:   bucket,
	}
}

func uploadKey(uploadID uuid.UUID) string {
	return "pukaist:upload:" + uploadID.String()
}

// SignedURL validates the file against the extension allow-list and size cap,
// presigns a PUT against object storage, and records the upload session so
// Complete can verify the handle later.
func (s *uploadService) SignedURL(ctx context.Context, input SignedURLInput) (*SignedURLResult, error) {
	if !s.extAllowed(input.Filename) {
		return nil, domain.ErrUnsupportedFileType
	}
	if s.cfg.MaxFileSizeMB > 0 && input.SizeBytes > s.cfg.MaxFileSizeMB*1024*1024 {
		return nil, domain.ErrFileTooLarge
	}

	expiry := input.ExpiresIn
	if expiry <= 0 {
		expiry = s.cfg.DefaultExpirySec
	}
	if s.cfg.MaxExpirySecs > 0 && expiry > s.cfg.MaxExpirySecs {
		expiry = s.cfg.MaxExpirySecs
	}

	uploadID := uuid.New()
	key := fmt.Sprintf("%s/uploads/%s/%s", input.TenantID, uploadID, sanitizeFilename(input.Filename))

	url, err := s.storage.PresignUpload(ctx, s.bucket, key, input.ContentType, expiry)
	if err != nil {
		log.Printf("uploadService.SignedURL: presign failed for %s: %v", key, err)
		return nil, domain.ErrUploadFailed
	}

	now := time.Now().UTC()
	session := domain.UploadSession{
		UploadID:    uploadID,
		TenantID:    input.TenantID,
		UserID:      input.UserID,
		Filename:    input.Filename,
		ContentType: input.ContentType,
		Theme:       input.Theme,
		S3Key:       key,
		ExpiresAt:   now.Add(time.Duration(expiry) * time.Second),
		CreatedAt:   now,
	}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("uploadService.SignedURL: encode session: %w", err)
	}
	if err := s.kv.Set(ctx, uploadKey(uploadID), data); err != nil {
		return nil, fmt.Errorf("uploadService.SignedURL: persist session: %w", err)
	}

	return &SignedURLResult{
		UploadID:  uploadID,
		UploadURL: url,
		S3Key:     key,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Complete consumes the upload session: it registers the document, snapshots
// the uploader's pipeline configuration into a queued job, and deletes the
// session so the handle is single-use.
func (s *uploadService) Complete(ctx context.Context, tenantID string, uploadID uuid.UUID) (*CompleteResult, error) {
	data, err := s.kv.Get(ctx, uploadKey(uploadID))
	if err != nil {
		return nil, domain.ErrUploadNotFound
	}
	var session domain.UploadSession
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("uploadService.Complete: corrupt session %s: %v", uploadID, err)
		return nil, domain.ErrUploadNotFound
	}
	if session.TenantID != tenantID {
		return nil, domain.ErrUploadNotFound
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		if err := s.kv.Delete(ctx, uploadKey(uploadID)); err != nil {
			log.Printf("uploadService.Complete: drop expired session %s: %v", uploadID, err)
		}
		return nil, domain.ErrUploadExpired
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:          uuid.New(),
		TenantID:    session.TenantID,
		UploadedBy:  session.UserID,
		Filename:    session.Filename,
		ContentType: session.ContentType,
		Theme:       session.Theme,
		S3Bucket:    s.bucket,
		S3Key:       session.S3Key,
		Status:      domain.DocumentStatusUploaded,
		CreatedAt:   now,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("uploadService.Complete: register document: %w", err)
	}

	// The intent is frozen at completion time; later configuration edits do
	// not affect jobs already enqueued.
	intent := s.pipeline.Intent(ctx, session.UserID)
	intentRaw, err := json.Marshal(intent)
	if err != nil {
		return nil, fmt.Errorf("uploadService.Complete: encode intent: %w", err)
	}

	job := &domain.Job{
		ID:        uuid.New(),
		TenantID:  session.TenantID,
		DocID:     doc.ID,
		Status:    domain.JobStatusQueued,
		Intent:    intent,
		IntentRaw: string(intentRaw),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("uploadService.Complete: enqueue job: %w", err)
	}

	if err := s.kv.Delete(ctx, uploadKey(uploadID)); err != nil {
		log.Printf("uploadService.Complete: drop session %s: %v", uploadID, err)
	}

	return &CompleteResult{DocID: doc.ID, JobID: job.ID}, nil
}

func (s *uploadService) extAllowed(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	for _, allowed := range s.cfg.AllowedExts {
		if ext == strings.ToLower(strings.TrimPrefix(allowed, ".")) {
			return true
		}
	}
	return false
}

// sanitizeFilename keeps the base name only and replaces characters that are
// awkward in object keys.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
}
