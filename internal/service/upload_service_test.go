package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pukaist/internal/config"
	"pukaist/internal/domain"
	memorykv "pukaist/internal/kv/memory"
	"pukaist/internal/repository/kvstore"
	"pukaist/internal/service"
	"pukaist/mocks"
)

func uploadTestConfig() config.UploadConfig {
	return config.UploadConfig{
		MaxFileSizeMB:    10,
		AllowedExts:      []string{"pdf", "png"},
		MaxExpirySecs:    3600,
		DefaultExpirySec: 900,
	}
}

func TestSignedURL_RejectsUnsupportedExtension(t *testing.T) {
	kv := memorykv.NewStore()
	storage := new(mocks.MockObjectStorage)
	svc := service.NewUploadService(kv, storage, kvstore.NewDocumentRepo(kv), new(mocks.MockJobRepo),
		service.NewPipelineService(kv), uploadTestConfig(), "bucket")

	_, err := svc.SignedURL(context.Background(), service.SignedURLInput{
		TenantID: "local", UserID: uuid.New(),
		Filename: "malware.exe", ContentType: "application/octet-stream",
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	storage.AssertNotCalled(t, "PresignUpload")
}

func TestSignedURL_RejectsOversizedFile(t *testing.T) {
	kv := memorykv.NewStore()
	storage := new(mocks.MockObjectStorage)
	svc := service.NewUploadService(kv, storage, kvstore.NewDocumentRepo(kv), new(mocks.MockJobRepo),
		service.NewPipelineService(kv), uploadTestConfig(), "bucket")

	_, err := svc.SignedURL(context.Background(), service.SignedURLInput{
		TenantID: "local", UserID: uuid.New(),
		Filename: "big.pdf", ContentType: "application/pdf",
		SizeBytes: 11 * 1024 * 1024,
	})
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestSignedURL_ClampsExpiry(t *testing.T) {
	kv := memorykv.NewStore()
	storage := new(mocks.MockObjectStorage)
	storage.On("PresignUpload", mock.Anything, "bucket", mock.Anything, "application/pdf", int64(3600)).
		Return("https://s3.example/put", nil)

	svc := service.NewUploadService(kv, storage, kvstore.NewDocumentRepo(kv), new(mocks.MockJobRepo),
		service.NewPipelineService(kv), uploadTestConfig(), "bucket")

	result, err := svc.SignedURL(context.Background(), service.SignedURLInput{
		TenantID: "local", UserID: uuid.New(),
		Filename: "deed.pdf", ContentType: "application/pdf",
		ExpiresIn: 99999,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example/put", result.UploadURL)
	storage.AssertExpectations(t)
}

func TestUploadComplete_FullFlow(t *testing.T) {
	kv := memorykv.NewStore()
	ctx := context.Background()
	userID := uuid.New()

	storage := new(mocks.MockObjectStorage)
	storage.On("PresignUpload", mock.Anything, "bucket", mock.Anything, "application/pdf", int64(900)).
		Return("https://s3.example/put", nil)

	jobRepo := new(mocks.MockJobRepo)
	jobRepo.On("Create", mock.Anything, mock.MatchedBy(func(job *domain.Job) bool {
		return job.Status == domain.JobStatusQueued && job.TenantID == "local"
	})).Return(nil)

	docRepo := kvstore.NewDocumentRepo(kv)
	pipelineSvc := service.NewPipelineService(kv)

	svc := service.NewUploadService(kv, storage, docRepo, jobRepo, pipelineSvc, uploadTestConfig(), "bucket")

	signed, err := svc.SignedURL(ctx, service.SignedURLInput{
		TenantID: "local", UserID: userID,
		Filename: "deed.pdf", ContentType: "application/pdf", Theme: "land",
	})
	require.NoError(t, err)

	result, err := svc.Complete(ctx, "local", signed.UploadID)
	require.NoError(t, err)

	doc, err := docRepo.GetByID(ctx, "local", result.DocID)
	require.NoError(t, err)
	assert.Equal(t, "deed.pdf", doc.Filename)
	assert.Equal(t, "land", doc.Theme)
	assert.Equal(t, domain.DocumentStatusUploaded, doc.Status)

	// The session is single-use.
	_, err = svc.Complete(ctx, "local", signed.UploadID)
	assert.ErrorIs(t, err, domain.ErrUploadNotFound)

	jobRepo.AssertExpectations(t)
}

func TestUploadComplete_FreezesIntent(t *testing.T) {
	kv := memorykv.NewStore()
	ctx := context.Background()
	userID := uuid.New()

	storage := new(mocks.MockObjectStorage)
	storage.On("PresignUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("https://s3.example/put", nil)

	var created *domain.Job
	jobRepo := new(mocks.MockJobRepo)
	jobRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.Job)
	}).Return(nil)

	pipelineSvc := service.NewPipelineService(kv)
	llmOff := false
	pipelineSvc.Update(ctx, userID, service.PipelineConfigPatch{LLMEnabled: &llmOff})

	svc := service.NewUploadService(kv, storage, kvstore.NewDocumentRepo(kv), jobRepo, pipelineSvc, uploadTestConfig(), "bucket")

	signed, err := svc.SignedURL(ctx, service.SignedURLInput{
		TenantID: "local", UserID: userID,
		Filename: "deed.pdf", ContentType: "application/pdf",
	})
	require.NoError(t, err)
	_, err = svc.Complete(ctx, "local", signed.UploadID)
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, domain.LLMModeOffline, created.Intent.LLMMode)
	assert.False(t, created.Intent.LLMEnabled)
}

func TestUploadComplete_WrongTenant(t *testing.T) {
	kv := memorykv.NewStore()
	ctx := context.Background()

	storage := new(mocks.MockObjectStorage)
	storage.On("PresignUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("https://s3.example/put", nil)

	svc := service.NewUploadService(kv, storage, kvstore.NewDocumentRepo(kv), new(mocks.MockJobRepo),
		service.NewPipelineService(kv), uploadTestConfig(), "bucket")

	signed, err := svc.SignedURL(ctx, service.SignedURLInput{
		TenantID: "local", UserID: uuid.New(),
		Filename: "deed.pdf", ContentType: "application/pdf",
	})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, "other", signed.UploadID)
	assert.ErrorIs(t, err, domain.ErrUploadNotFound)
}

func TestUploadComplete_Expired(t *testing.T) {
	kv := memorykv.NewStore()
	ctx := context.Background()
	uploadID := uuid.New()

	// Plant an already-expired session directly.
	session := domain.UploadSession{
		UploadID:  uploadID,
		TenantID:  "local",
		UserID:    uuid.New(),
		Filename:  "deed.pdf",
		S3Key:     "local/uploads/x/deed.pdf",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	data, err := json.Marshal(session)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "pukaist:upload:"+uploadID.String(), data))

	svc := service.NewUploadService(kv, new(mocks.MockObjectStorage), kvstore.NewDocumentRepo(kv),
		new(mocks.MockJobRepo), service.NewPipelineService(kv), uploadTestConfig(), "bucket")

	_, err = svc.Complete(ctx, "local", uploadID)
	assert.ErrorIs(t, err, domain.ErrUploadExpired)
}
