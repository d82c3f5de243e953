package domain

import (
	"time"

	"github.com/google/uuid"
)

// LocalUserID identifies the implicit single user when auth is disabled.
var LocalUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// LocalTenant is the tenant slug used when auth is disabled.
const LocalTenant = "local"

// PipelineConfig is the per-user configuration of optional processing stages.
// The stored LLMMode and the effective mode sent to the backend are not the
// same value; see PipelineIntent.
type PipelineConfig struct {
	OCREnabled        bool       `json:"ocr_enabled"`
	OCRBackend        OCRBackend `json:"ocr_backend"`
	LLMEnabled        bool       `json:"llm_enabled"`
	LLMMode           LLMMode    `json:"llm_mode"`
	EmbeddingsEnabled bool       `json:"embeddings_enabled"`
	GeoEnabled        bool       `json:"geo_enabled"`
	InsightsEnabled   bool       `json:"insights_enabled"`
	ForensicEnabled   bool       `json:"forensic_enabled"`
}

// DefaultPipelineConfig returns the exact default record used on first load
// and on reset.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		OCREnabled:        true,
		OCRBackend:        OCRBackendSmart,
		LLMEnabled:        true,
		LLMMode:           LLMModeBatch,
		EmbeddingsEnabled: true,
		GeoEnabled:        true,
		InsightsEnabled:   false,
		ForensicEnabled:   false,
	}
}

// PipelineIntent is the serialized projection of PipelineConfig sent to the
// processing backend with each upload.
type PipelineIntent struct {
	OCREnabled        bool       `json:"ocr_enabled"`
	OCRBackend        OCRBackend `json:"ocr_backend"`
	LLMEnabled        bool       `json:"llm_enabled"`
	LLMMode           LLMMode    `json:"llm_mode"`
	EmbeddingsEnabled bool       `json:"embeddings_enabled"`
	GeoEnabled        bool       `json:"geo_enabled"`
	InsightsEnabled   bool       `json:"insights_enabled"`
	ForensicEnabled   bool       `json:"forensic_enabled"`
}

// Intent projects the configuration into the wire form. The effective LLM
// mode is forced to offline when LLM is disabled, regardless of the stored
// mode field.
func (p PipelineConfig) Intent() PipelineIntent {
	mode := p.LLMMode
	if !p.LLMEnabled {
		mode = LLMModeOffline
	}
	return PipelineIntent{
		OCREnabled:        p.OCREnabled,
		OCRBackend:        p.OCRBackend,
		LLMEnabled:        p.LLMEnabled,
		LLMMode:           mode,
		EmbeddingsEnabled: p.EmbeddingsEnabled,
		GeoEnabled:        p.GeoEnabled,
		InsightsEnabled:   p.InsightsEnabled,
		ForensicEnabled:   p.ForensicEnabled,
	}
}

// Stages lists the processing stages a job derived from this intent runs,
// in execution order.
func (i PipelineIntent) Stages() []PipelineStage {
	var stages []PipelineStage
	if i.OCREnabled {
		stages = append(stages, StageOCR)
	}
	if i.LLMEnabled && i.LLMMode != LLMModeOffline {
		stages = append(stages, StageLLM)
	}
	if i.EmbeddingsEnabled {
		stages = append(stages, StageEmbeddings)
	}
	if i.GeoEnabled {
		stages = append(stages, StageGeo)
	}
	if i.InsightsEnabled {
		stages = append(stages, StageInsights)
	}
	if i.ForensicEnabled {
		stages = append(stages, StageForensic)
	}
	return stages
}

// WizardFields is the persisted snapshot of the case-creation wizard. No
// field is structurally required at the store level; validation, if any, is
// a presentation concern.
type WizardFields struct {
	CaseName           string `json:"case_name"`
	CaseType           string `json:"case_type"`
	Claimant           string `json:"claimant"`
	Defendant          string `json:"defendant"`
	FileNumber         string `json:"file_number"`
	Court              string `json:"court"`
	Jurisdiction       string `json:"jurisdiction"`
	StartYear          string `json:"start_year"`
	EndYear            string `json:"end_year"`
	MissionFocus       string `json:"mission_focus"`
	RequirementsNotes  string `json:"requirements_notes"`
	ContactEmail       string `json:"contact_email"`
	Theme              string `json:"theme"`
	ThemeLandReduction bool   `json:"theme_land_reduction"`
	ThemeTrespass      bool   `json:"theme_trespass"`
	ThemeWaterRights   bool   `json:"theme_water_rights"`
	ThemeTimberHarvest bool   `json:"theme_timber_harvest"`
	ThemeFisheries     bool   `json:"theme_fisheries"`
	ThemeRoads         bool   `json:"theme_roads"`
	Open               bool   `json:"open"`
}

// DefaultWizardFields returns the record used on first open.
func DefaultWizardFields() WizardFields {
	return WizardFields{Open: true}
}

// LessonProgress records a single lesson within a unit. ViewedAt is the
// first-view timestamp and is never refreshed on repeat views.
type LessonProgress struct {
	ViewedAt  time.Time `json:"viewed_at"`
	Completed bool      `json:"completed"`
}

// UnitProgress holds per-lesson records and an optional completion stamp.
// CompletedAt is independent of whether every lesson was visited.
type UnitProgress struct {
	Lessons     map[string]LessonProgress `json:"lessons"`
	CompletedAt *time.Time                `json:"completed_at,omitempty"`
}

// ModuleProgress groups units within a module.
type ModuleProgress struct {
	Units map[string]*UnitProgress `json:"units"`
}

// PathwayProgress groups modules within a pathway.
type PathwayProgress struct {
	Modules map[string]*ModuleProgress `json:"modules"`
}

// Streak is the day-streak record derived from visit timestamps.
type Streak struct {
	CurrentDays int       `json:"current_days"`
	LastVisit   time.Time `json:"last_visit"`
	FirstVisit  time.Time `json:"first_visit"`
}

// ProgressState is the full curriculum progress record for one user.
type ProgressState struct {
	Pathways           map[string]*PathwayProgress `json:"pathways"`
	Streak             Streak                      `json:"streak"`
	TotalLessonsViewed int                         `json:"total_lessons_viewed"`
}

// DefaultProgressState returns the fresh structure: the default pathway keys
// present with empty modules, zero streak, zero totals.
func DefaultProgressState() *ProgressState {
	pathways := make(map[string]*PathwayProgress, len(DefaultPathways))
	for _, p := range DefaultPathways {
		pathways[p] = &PathwayProgress{Modules: map[string]*ModuleProgress{}}
	}
	return &ProgressState{Pathways: pathways}
}

// UndoAction is the transient record for one reversible user action.
type UndoAction struct {
	ID        uuid.UUID     `json:"id"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"duration_ms"`
	CreatedAt time.Time     `json:"created_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// Collection groups documents under a per-tenant unique name.
type Collection struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TenantID    string    `json:"tenant_id"`
	DocIDs      []string  `json:"doc_ids"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Document is the registry entry for an uploaded document.
type Document struct {
	ID          uuid.UUID      `json:"id"`
	TenantID    string         `json:"tenant_id"`
	UploadedBy  uuid.UUID      `json:"uploaded_by"`
	Filename    string         `json:"filename"`
	ContentType string         `json:"content_type"`
	Theme       string         `json:"theme,omitempty"`
	S3Bucket    string         `json:"s3_bucket"`
	S3Key       string         `json:"s3_key"`
	Status      DocumentStatus `json:"status"`
	Summary     string         `json:"summary,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// UploadSession tracks one signed-URL upload between issuance and completion.
type UploadSession struct {
	UploadID    uuid.UUID `json:"upload_id"`
	TenantID    string    `json:"tenant_id"`
	UserID      uuid.UUID `json:"user_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Theme       string    `json:"theme,omitempty"`
	S3Key       string    `json:"s3_key"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Job is one background processing job created on upload completion.
type Job struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	TenantID  string         `db:"tenant_id" json:"tenant_id"`
	DocID     uuid.UUID      `db:"doc_id" json:"doc_id"`
	Status    JobStatus      `db:"status" json:"status"`
	Stage     string         `db:"stage" json:"stage,omitempty"`
	Attempts  int            `db:"attempts" json:"attempts"`
	LastError *string        `db:"last_error" json:"last_error,omitempty"`
	Intent    PipelineIntent `db:"-" json:"intent"`
	IntentRaw string         `db:"intent" json:"-"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// ExportOptions is the options record accepted by collection export.
type ExportOptions struct {
	Format         ExportFormat   `json:"format"`
	IncludeSummary bool           `json:"include_summary"`
	Delivery       ExportDelivery `json:"delivery,omitempty"`
}

// ExportResult is either inline bytes or a presigned artifact URL.
type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	URL         string `json:"url,omitempty"`
}
