package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pukaist/internal/config"
	"pukaist/internal/handler"
	filekv "pukaist/internal/kv/file"
	memorykv "pukaist/internal/kv/memory"
	rediskv "pukaist/internal/kv/redis"
	"pukaist/internal/pipeline"
	"pukaist/internal/port"
	"pukaist/internal/repository/kvstore"
	"pukaist/internal/repository/sqlite"
	"pukaist/internal/router"
	"pukaist/internal/service"
	s3storage "pukaist/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// .env is optional; environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	kv, err := newKVStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize kv store: %w", err)
	}

	db, err := sqlite.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open job database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	jobRepo := sqlite.NewJobRepo(db)
	collectionRepo := kvstore.NewCollectionRepo(kv)
	docRepo := kvstore.NewDocumentRepo(kv)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.Auth)
	densitySvc := service.NewDensityService(kv)
	pipelineSvc := service.NewPipelineService(kv)
	spotlightSvc := service.NewSpotlightService(kv)
	wizardSvc := service.NewWizardService(kv)
	progressSvc := service.NewProgressService(kv)
	undoSvc := service.NewUndoService(time.Duration(cfg.Undo.DefaultDurationMS) * time.Millisecond)
	defer undoSvc.Shutdown()
	collectionSvc := service.NewCollectionService(collectionRepo, docRepo, undoSvc)
	exportSvc := service.NewExportService(collectionRepo, docRepo, s3Client, cfg.S3.Bucket, cfg.S3.PresignExpiry)
	uploadSvc := service.NewUploadService(kv, s3Client, docRepo, jobRepo, pipelineSvc, cfg.Upload, cfg.S3.Bucket)
	jobSvc := service.NewJobService(jobRepo, docRepo, pipeline.NewLocalRunner())

	// Initialize handlers
	prefH := handler.NewPreferenceHandler(densitySvc, pipelineSvc, spotlightSvc)
	wizardH := handler.NewWizardHandler(wizardSvc)
	progressH := handler.NewProgressHandler(progressSvc)
	undoH := handler.NewUndoHandler(undoSvc)
	collectionH := handler.NewCollectionHandler(collectionSvc, exportSvc)
	uploadH := handler.NewUploadHandler(uploadSvc)
	jobH := handler.NewJobHandler(jobSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(
		authSvc, cfg.Auth.Enabled(), cfg.CORS.AllowedOrigins,
		prefH, wizardH, progressH, undoH, collectionH, uploadH, jobH, healthH,
	)

	// Background queue worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	worker := service.NewJobQueueWorker(jobRepo, jobSvc, service.JobQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(workerCtx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		stopWorker()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Printf("received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}

	stopWorker()
	<-workerDone
	return nil
}

// newKVStore selects the key-value backend from configuration.
func newKVStore(cfg *config.Config) (port.KeyValueStore, error) {
	switch cfg.KV.Backend {
	case "memory":
		return memorykv.NewStore(), nil
	case "redis":
		return rediskv.NewStore(&cfg.KV)
	case "file", "":
		return filekv.NewStore(cfg.KV.Dir)
	default:
		return nil, fmt.Errorf("unknown kv backend %q", cfg.KV.Backend)
	}
}
