package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pukaist/internal/domain"
	"pukaist/internal/port"
)

type jobRepo struct {
	db *sqlx.DB
}

// NewJobRepo creates a SQLite-backed JobRepository.
func NewJobRepo(db *sqlx.DB) port.JobRepository {
	return &jobRepo{db: db}
}

// jobRow is the storage shape; timestamps are unix seconds.
type jobRow struct {
	ID        string  `db:"id"`
	TenantID  string  `db:"tenant_id"`
	DocID     string  `db:"doc_id"`
	Status    string  `db:"status"`
	Stage     string  `db:"stage"`
	Attempts  int     `db:"attempts"`
	LastError *string `db:"last_error"`
	Intent    string  `db:"intent"`
	CreatedAt int64   `db:"created_at"`
	UpdatedAt int64   `db:"updated_at"`
}

func (r *jobRow) toDomain() (*domain.Job, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("jobRepo: parsing job id %q: %w", r.ID, err)
	}
	docID, err := uuid.Parse(r.DocID)
	if err != nil {
		return nil, fmt.Errorf("jobRepo: parsing doc id %q: %w", r.DocID, err)
	}
	job := &domain.Job{
		ID:        id,
		TenantID:  r.TenantID,
		DocID:     docID,
		Status:    domain.JobStatus(r.Status),
		Stage:     r.Stage,
		Attempts:  r.Attempts,
		LastError: r.LastError,
		IntentRaw: r.Intent,
		CreatedAt: time.Unix(r.CreatedAt, 0).UTC(),
		UpdatedAt: time.Unix(r.UpdatedAt, 0).UTC(),
	}
	if r.Intent != "" {
		if err := json.Unmarshal([]byte(r.Intent), &job.Intent); err != nil {
			return nil, fmt.Errorf("jobRepo: decoding intent for job %s: %w", r.ID, err)
		}
	}
	return job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	intent, err := json.Marshal(job.Intent)
	if err != nil {
		return fmt.Errorf("jobRepo.Create: encoding intent: %w", err)
	}
	job.IntentRaw = string(intent)

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO jobs (id, tenant_id, doc_id, status, stage, attempts, last_error, intent, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID.String(), job.TenantID, job.DocID.String(), string(job.Status), job.Stage,
		job.Attempts, job.LastError, job.IntentRaw, now.Unix(), now.Unix())
	if err != nil {
		return fmt.Errorf("jobRepo.Create: %w", err)
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, tenantID string, jobID uuid.UUID) (*domain.Job, error) {
	var row jobRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM jobs WHERE id = ? AND tenant_id = ?", jobID.String(), tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("jobRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

func (r *jobRepo) List(ctx context.Context, tenantID string, status domain.JobStatus, offset, limit int) ([]domain.Job, int, error) {
	where := "WHERE tenant_id = ?"
	args := []interface{}{tenantID}
	if status != "" {
		where += " AND status = ?"
		args = append(args, string(status))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM jobs "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("jobRepo.List count: %w", err)
	}

	var rows []jobRow
	query := "SELECT * FROM jobs " + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("jobRepo.List: %w", err)
	}

	jobs := make([]domain.Job, 0, len(rows))
	for i := range rows {
		job, err := rows[i].toDomain()
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, total, nil
}

func (r *jobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Job, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("jobRepo.ClaimQueued: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var rows []jobRow
	err = tx.SelectContext(ctx, &rows,
		"SELECT * FROM jobs WHERE status = ? ORDER BY created_at ASC LIMIT ?",
		string(domain.JobStatusQueued), limit)
	if err != nil {
		return nil, fmt.Errorf("jobRepo.ClaimQueued: select: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	now := time.Now().UTC().Unix()
	ids := make([]interface{}, 0, len(rows))
	placeholders := make([]string, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
		placeholders = append(placeholders, "?")
	}
	args := append([]interface{}{string(domain.JobStatusProcessing), now}, ids...)
	_, err = tx.ExecContext(ctx,
		"UPDATE jobs SET status = ?, attempts = attempts + 1, updated_at = ? WHERE id IN ("+strings.Join(placeholders, ",")+")",
		args...)
	if err != nil {
		return nil, fmt.Errorf("jobRepo.ClaimQueued: update: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("jobRepo.ClaimQueued: commit: %w", err)
	}

	jobs := make([]domain.Job, 0, len(rows))
	for i := range rows {
		job, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		job.Status = domain.JobStatusProcessing
		job.Attempts++
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

func (r *jobRepo) SetStage(ctx context.Context, jobID uuid.UUID, stage domain.PipelineStage) error {
	return r.update(ctx, jobID,
		"UPDATE jobs SET stage = ?, updated_at = ? WHERE id = ?",
		string(stage), time.Now().UTC().Unix(), jobID.String())
}

func (r *jobRepo) MarkCompleted(ctx context.Context, jobID uuid.UUID) error {
	return r.update(ctx, jobID,
		"UPDATE jobs SET status = ?, last_error = NULL, updated_at = ? WHERE id = ?",
		string(domain.JobStatusCompleted), time.Now().UTC().Unix(), jobID.String())
}

func (r *jobRepo) MarkFlagged(ctx context.Context, jobID uuid.UUID, lastError string) error {
	return r.update(ctx, jobID,
		"UPDATE jobs SET status = ?, last_error = ?, updated_at = ? WHERE id = ?",
		string(domain.JobStatusFlagged), lastError, time.Now().UTC().Unix(), jobID.String())
}

func (r *jobRepo) Release(ctx context.Context, jobID uuid.UUID, lastError string) error {
	return r.update(ctx, jobID,
		"UPDATE jobs SET status = ?, last_error = ?, updated_at = ? WHERE id = ?",
		string(domain.JobStatusQueued), lastError, time.Now().UTC().Unix(), jobID.String())
}

func (r *jobRepo) Requeue(ctx context.Context, tenantID string, jobID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE jobs SET status = ?, last_error = NULL, updated_at = ? WHERE id = ? AND tenant_id = ? AND status = ?",
		string(domain.JobStatusQueued), time.Now().UTC().Unix(), jobID.String(), tenantID,
		string(domain.JobStatusFlagged))
	if err != nil {
		return fmt.Errorf("jobRepo.Requeue: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Distinguish a missing job from one in the wrong state.
		if _, getErr := r.GetByID(ctx, tenantID, jobID); getErr != nil {
			return getErr
		}
		return domain.ErrJobNotFlagged
	}
	return nil
}

func (r *jobRepo) update(ctx context.Context, jobID uuid.UUID, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("jobRepo.update %s: %w", jobID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}
