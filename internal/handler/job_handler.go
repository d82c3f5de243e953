package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pukaist/internal/domain"
	"pukaist/internal/render"
	"pukaist/internal/service"
)

// JobHandler exposes the processing queue.
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// List handles GET /jobs
func (h *JobHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	status := domain.JobStatus(c.Query("status"))

	jobs, total, err := h.jobService.List(c.Request.Context(), tenantID, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, jobs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /jobs/:id
//
// The response includes the stepper model so clients can render stage
// progress directly.
func (h *JobHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job ID")
		return
	}

	job, err := h.jobService.GetByID(c.Request.Context(), tenantID, jobID)
	if err != nil {
		HandleError(c, err)
		return
	}

	steps, percent := jobStepper(job)
	RespondOK(c, gin.H{
		"job":     job,
		"steps":   steps,
		"percent": percent,
	})
}

// Requeue handles POST /jobs/:id/requeue
func (h *JobHandler) Requeue(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job ID")
		return
	}
	if err := h.jobService.Requeue(c.Request.Context(), tenantID, jobID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"requeued": true})
}

// jobStepper maps the job's stage list and current stage onto the step
// progress model. Completed jobs show every step done.
func jobStepper(job *domain.Job) ([]render.Step, int) {
	stages := job.Intent.Stages()
	labels := make([]string, len(stages))
	current := len(stages)
	for i, stage := range stages {
		labels[i] = string(stage)
		if string(stage) == job.Stage && job.Status != domain.JobStatusCompleted {
			current = i
		}
	}
	return render.StepProgress(labels, current)
}

// parsePagination reads offset/limit query params with sane bounds.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
