package domain

// DensityMode is the UI density preset controlling spacing and sizing.
type DensityMode string

const (
	DensityCompact     DensityMode = "compact"
	DensityComfortable DensityMode = "comfortable"
)

// DefaultDensity is substituted for a missing or corrupt persisted value.
const DefaultDensity = DensityComfortable

// ValidDensityModes maps the two accepted density values.
var ValidDensityModes = map[DensityMode]bool{
	DensityCompact:     true,
	DensityComfortable: true,
}

// OCRBackend selects the OCR engine applied during ingestion.
type OCRBackend string

const (
	OCRBackendSmart     OCRBackend = "smart"
	OCRBackendHunyuan   OCRBackend = "hunyuan"
	OCRBackendTesseract OCRBackend = "tesseract"
)

// LLMMode controls how LLM summarization runs for an upload.
type LLMMode string

const (
	LLMModeSync    LLMMode = "sync"
	LLMModeBatch   LLMMode = "batch"
	LLMModeOffline LLMMode = "offline"
)

// JobStatus represents the lifecycle of a processing job.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFlagged    JobStatus = "flagged"
)

// PipelineStage names a single processing stage within a job.
type PipelineStage string

const (
	StageOCR        PipelineStage = "ocr"
	StageLLM        PipelineStage = "llm"
	StageEmbeddings PipelineStage = "embeddings"
	StageGeo        PipelineStage = "geo"
	StageInsights   PipelineStage = "insights"
	StageForensic   PipelineStage = "forensic"
)

// DocumentStatus represents the review lifecycle of an uploaded document.
type DocumentStatus string

const (
	DocumentStatusUploaded  DocumentStatus = "uploaded"
	DocumentStatusProcessed DocumentStatus = "processed"
)

// ExportFormat is the requested collection export output format.
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatCSV      ExportFormat = "csv"
	ExportFormatHTML     ExportFormat = "html"
	ExportFormatXLSX     ExportFormat = "xlsx"
)

// ExportDelivery chooses between inline bytes and an uploaded artifact URL.
type ExportDelivery string

const (
	ExportDeliveryInline ExportDelivery = "inline"
	ExportDeliveryURL    ExportDelivery = "url"
)

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// DefaultPathways are the curriculum pathways always present in a fresh
// progress record.
var DefaultPathways = []string{"land", "water", "governance", "treaty"}
