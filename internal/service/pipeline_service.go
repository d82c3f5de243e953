package service

import (
	"context"

	"github.com/google/uuid"

	"pukaist/internal/domain"
	"pukaist/internal/port"
)

// PipelineConfigPatch carries field-by-field updates; nil fields are left
// unchanged. The store performs no field-level validation beyond the type:
// any enum value accepted by the type is stored verbatim.
type PipelineConfigPatch struct {
	OCREnabled        *bool              `json:"ocr_enabled,omitempty"`
	OCRBackend        *domain.OCRBackend `json:"ocr_backend,omitempty"`
	LLMEnabled        *bool              `json:"llm_enabled,omitempty"`
	LLMMode           *domain.LLMMode    `json:"llm_mode,omitempty"`
	EmbeddingsEnabled *bool              `json:"embeddings_enabled,omitempty"`
	GeoEnabled        *bool              `json:"geo_enabled,omitempty"`
	InsightsEnabled   *bool              `json:"insights_enabled,omitempty"`
	ForensicEnabled   *bool              `json:"forensic_enabled,omitempty"`
}

// PipelineService manages the per-user processing pipeline configuration and
// its wire-form intent projection.
type PipelineService interface {
	Get(ctx context.Context, userID uuid.UUID) domain.PipelineConfig
	Update(ctx context.Context, userID uuid.UUID, patch PipelineConfigPatch) domain.PipelineConfig
	Reset(ctx context.Context, userID uuid.UUID) domain.PipelineConfig
	Intent(ctx context.Context, userID uuid.UUID) domain.PipelineIntent
}

type pipelineService struct {
	kv port.KeyValueStore
}

// NewPipelineService creates a new PipelineService implementation.
func NewPipelineService(kv port.KeyValueStore) PipelineService {
	return &pipelineService{kv: kv}
}

func pipelineKey(userID uuid.UUID) string {
	return "pukaist:pipeline-config:" + userID.String()
}

func (s *pipelineService) Get(ctx context.Context, userID uuid.UUID) domain.PipelineConfig {
	cfg := domain.DefaultPipelineConfig()
	readState(ctx, s.kv, pipelineKey(userID), &cfg)
	return cfg
}

func (s *pipelineService) Update(ctx context.Context, userID uuid.UUID, patch PipelineConfigPatch) domain.PipelineConfig {
	cfg := s.Get(ctx, userID)
	if patch.OCREnabled != nil {
		cfg.OCREnabled = *patch.OCREnabled
	}
	if patch.OCRBackend != nil {
		cfg.OCRBackend = *patch.OCRBackend
	}
	if patch.LLMEnabled != nil {
		cfg.LLMEnabled = *patch.LLMEnabled
	}
	if patch.LLMMode != nil {
		cfg.LLMMode = *patch.LLMMode
	}
	if patch.EmbeddingsEnabled != nil {
		cfg.EmbeddingsEnabled = *patch.EmbeddingsEnabled
	}
	if patch.GeoEnabled != nil {
		cfg.GeoEnabled = *patch.GeoEnabled
	}
	if patch.InsightsEnabled != nil {
		cfg.InsightsEnabled = *patch.InsightsEnabled
	}
	if patch.ForensicEnabled != nil {
		cfg.ForensicEnabled = *patch.ForensicEnabled
	}
	writeState(ctx, s.kv, pipelineKey(userID), cfg)
	return cfg
}

// Reset restores the exact default record, not a partial merge.
func (s *pipelineService) Reset(ctx context.Context, userID uuid.UUID) domain.PipelineConfig {
	cfg := domain.DefaultPipelineConfig()
	writeState(ctx, s.kv, pipelineKey(userID), cfg)
	return cfg
}

func (s *pipelineService) Intent(ctx context.Context, userID uuid.UUID) domain.PipelineIntent {
	return s.Get(ctx, userID).Intent()
}
