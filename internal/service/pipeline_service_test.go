package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"pukaist/internal/domain"
	memorykv "pukaist/internal/kv/memory"
)

func boolPtr(v bool) *bool { return &v }

func TestPipelineGet_Default(t *testing.T) {
	svc := NewPipelineService(memorykv.NewStore())
	cfg := svc.Get(context.Background(), uuid.New())
	assert.Equal(t, domain.DefaultPipelineConfig(), cfg)
}

func TestPipelineUpdate_MergesPatch(t *testing.T) {
	svc := NewPipelineService(memorykv.NewStore())
	ctx := context.Background()
	userID := uuid.New()

	mode := domain.LLMModeSync
	cfg := svc.Update(ctx, userID, PipelineConfigPatch{
		LLMMode:         &mode,
		InsightsEnabled: boolPtr(true),
	})

	assert.Equal(t, domain.LLMModeSync, cfg.LLMMode)
	assert.True(t, cfg.InsightsEnabled)
	// Untouched fields keep their defaults.
	assert.True(t, cfg.OCREnabled)
	assert.Equal(t, domain.OCRBackendSmart, cfg.OCRBackend)
}

func TestPipelineIntent_OfflineOverride(t *testing.T) {
	svc := NewPipelineService(memorykv.NewStore())
	ctx := context.Background()
	userID := uuid.New()

	// LLM disabled with a stored batch mode: the intent reports offline, the
	// stored config keeps batch.
	svc.Update(ctx, userID, PipelineConfigPatch{LLMEnabled: boolPtr(false)})

	intent := svc.Intent(ctx, userID)
	assert.Equal(t, domain.LLMModeOffline, intent.LLMMode)
	assert.Equal(t, domain.LLMModeBatch, svc.Get(ctx, userID).LLMMode)

	// Re-enabling restores the stored mode on the wire.
	svc.Update(ctx, userID, PipelineConfigPatch{LLMEnabled: boolPtr(true)})
	assert.Equal(t, domain.LLMModeBatch, svc.Intent(ctx, userID).LLMMode)
}

func TestPipelineIntent_StagesSkipOfflineLLM(t *testing.T) {
	svc := NewPipelineService(memorykv.NewStore())
	ctx := context.Background()
	userID := uuid.New()

	svc.Update(ctx, userID, PipelineConfigPatch{LLMEnabled: boolPtr(false)})
	stages := svc.Intent(ctx, userID).Stages()

	assert.NotContains(t, stages, domain.StageLLM)
	assert.Contains(t, stages, domain.StageOCR)
	assert.Contains(t, stages, domain.StageEmbeddings)
}

func TestPipelineReset_ExactDefaults(t *testing.T) {
	svc := NewPipelineService(memorykv.NewStore())
	ctx := context.Background()
	userID := uuid.New()

	svc.Update(ctx, userID, PipelineConfigPatch{
		OCREnabled:      boolPtr(false),
		ForensicEnabled: boolPtr(true),
	})

	assert.Equal(t, domain.DefaultPipelineConfig(), svc.Reset(ctx, userID))
	assert.Equal(t, domain.DefaultPipelineConfig(), svc.Get(ctx, userID))
}
