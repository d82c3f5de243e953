package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	memorykv "pukaist/internal/kv/memory"
)

func strPtr(v string) *string { return &v }

func TestWizardGet_Default(t *testing.T) {
	svc := NewWizardService(memorykv.NewStore())
	fields := svc.Get(context.Background(), uuid.New())
	assert.True(t, fields.Open)
	assert.Empty(t, fields.CaseName)
}

func TestWizardUpdate_MergesFields(t *testing.T) {
	svc := NewWizardService(memorykv.NewStore())
	ctx := context.Background()
	userID := uuid.New()

	svc.Update(ctx, userID, WizardFieldsPatch{
		CaseName: strPtr("Treaty boundary review"),
		Claimant: strPtr("Jane Doe"),
	})
	fields := svc.Update(ctx, userID, WizardFieldsPatch{
		ThemeWaterRights: boolPtr(true),
	})

	// Earlier edits survive later partial patches.
	assert.Equal(t, "Treaty boundary review", fields.CaseName)
	assert.Equal(t, "Jane Doe", fields.Claimant)
	assert.True(t, fields.ThemeWaterRights)
	assert.False(t, fields.ThemeTrespass)
}

func TestWizardSave_ClosesButKeepsFields(t *testing.T) {
	kv := memorykv.NewStore()
	svc := NewWizardService(kv)
	ctx := context.Background()
	userID := uuid.New()

	svc.Update(ctx, userID, WizardFieldsPatch{Claimant: strPtr("Jane Doe")})
	saved := svc.Save(ctx, userID)

	assert.False(t, saved.Open)
	assert.Equal(t, "Jane Doe", saved.Claimant)

	// A fresh service over the same store still sees the entered fields.
	again := NewWizardService(kv)
	fields := again.Get(ctx, userID)
	assert.Equal(t, "Jane Doe", fields.Claimant)
	assert.False(t, fields.Open)
}

func TestWizardReset_ClearsFields(t *testing.T) {
	svc := NewWizardService(memorykv.NewStore())
	ctx := context.Background()
	userID := uuid.New()

	svc.Update(ctx, userID, WizardFieldsPatch{CaseName: strPtr("old case")})
	fields := svc.Reset(ctx, userID)

	assert.Empty(t, fields.CaseName)
	assert.True(t, fields.Open)
}
