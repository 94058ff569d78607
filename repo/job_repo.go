package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cedge2/jobly/db"
	"github.com/cedge2/jobly/models"
	"github.com/cedge2/jobly/sqlbuild"
)

// ─────────────────────────────────────────────────────────────────────────────
// JobRepository
// ─────────────────────────────────────────────────────────────────────────────

// JobRepository defines the contract for job persistence operations.
type JobRepository interface {
	Insert(ctx context.Context, params models.CreateJobParams) (*models.Job, error)
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	List(ctx context.Context, filter models.JobFilter) ([]*models.Job, error)
	ListByCompany(ctx context.Context, handle string) ([]*models.Job, error)
	Update(ctx context.Context, params models.UpdateJobParams) (*models.Job, error)
	Delete(ctx context.Context, id int64) error
	BatchInsert(ctx context.Context, params []models.CreateJobParams) ([]*models.Job, error)
}

type jobRepo struct {
	q db.Querier
}

// NewJobRepo returns a JobRepository backed by q.
func NewJobRepo(q db.Querier) JobRepository {
	return &jobRepo{q: q}
}

// ─────────────────────────────────────────────────────────────────────────────
// SQL constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	sqlInsertJob = `
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, salary, equity, company_handle`

	sqlGetJob = `
		SELECT id, title, salary, equity, company_handle
		FROM   jobs
		WHERE  id = $1
		LIMIT  1`

	sqlListJobsByCompany = `
		SELECT id, title, salary, equity, company_handle
		FROM   jobs
		WHERE  company_handle = $1
		ORDER  BY id`

	sqlDeleteJob = `
		DELETE FROM jobs WHERE id = $1`
)

// ─────────────────────────────────────────────────────────────────────────────
// Operations
// ─────────────────────────────────────────────────────────────────────────────

// Insert posts a job and returns the persisted record including its id.
// Returns db.ErrForeignKeyViolation when the company handle does not exist.
func (r *jobRepo) Insert(ctx context.Context, params models.CreateJobParams) (*models.Job, error) {
	row := r.q.QueryRow(ctx, sqlInsertJob,
		params.Title, params.Salary, params.Equity, params.CompanyHandle)
	return scanJob(row)
}

// GetByID returns a single job by primary key.
// Returns db.ErrNotFound when no record matches.
func (r *jobRepo) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	row := r.q.QueryRow(ctx, sqlGetJob, id)
	return scanJob(row)
}

// List returns jobs matching filter, ordered by id.
func (r *jobRepo) List(ctx context.Context, filter models.JobFilter) ([]*models.Job, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 2)

	if filter.TitleLike != "" {
		args = append(args, "%"+filter.TitleLike+"%")
		where = append(where, fmt.Sprintf("LOWER(title) LIKE LOWER($%d)", len(args)))
	}
	if filter.MinSalary != nil {
		args = append(args, *filter.MinSalary)
		where = append(where, fmt.Sprintf("salary >= $%d", len(args)))
	}
	if filter.HasEquity {
		where = append(where, "equity > 0")
	}

	query := `
		SELECT id, title, salary, equity, company_handle
		FROM   jobs`
	if len(where) > 0 {
		query += "\n\t\tWHERE  " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER  BY id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// ListByCompany returns all jobs posted by one company, ordered by id.
func (r *jobRepo) ListByCompany(ctx context.Context, handle string) ([]*models.Job, error) {
	rows, err := r.q.Query(ctx, sqlListJobsByCompany, handle)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// Update applies a partial update to a job. The id and company handle are
// immutable; everything else flows through sqlbuild.
//
// Returns sqlbuild.ErrNoUpdateData unchanged when params carries no fields.
func (r *jobRepo) Update(ctx context.Context, params models.UpdateJobParams) (*models.Job, error) {
	clause, err := sqlbuild.ForPartialUpdate(params.UpdateData(), models.JobColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE jobs
		SET    %s
		WHERE  id = $%d
		RETURNING id, title, salary, equity, company_handle`,
		clause.SetCols, len(clause.Values)+1)
	args := append(clause.Values, params.ID)

	row := r.q.QueryRow(ctx, query, args...)
	return scanJob(row)
}

// Delete removes a job by id.
// Returns db.ErrNotFound if no row was deleted.
func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.Exec(ctx, sqlDeleteJob, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return db.ErrNotFound
	}
	return nil
}

// BatchInsert posts multiple jobs through one prepared statement. Run it
// inside ExecTx when all-or-nothing semantics are needed.
func (r *jobRepo) BatchInsert(ctx context.Context, params []models.CreateJobParams) ([]*models.Job, error) {
	if len(params) == 0 {
		return nil, nil
	}

	stmt, err := r.q.Prepare(ctx, sqlInsertJob)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	jobs := make([]*models.Job, 0, len(params))
	for _, p := range params {
		row := stmt.QueryRow(ctx, p.Title, p.Salary, p.Equity, p.CompanyHandle)
		j, err := scanJob(row)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Scan helpers
// ─────────────────────────────────────────────────────────────────────────────

func scanJob(row *db.Row) (*models.Job, error) {
	j := &models.Job{}
	err := row.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle)
	if err != nil {
		return nil, fmt.Errorf("repo/job: %w", err)
	}
	return j, nil
}

func collectJobs(rows *sql.Rows) ([]*models.Job, error) {
	var jobs []*models.Job
	for rows.Next() {
		j := &models.Job{}
		if err := rows.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle); err != nil {
			return nil, fmt.Errorf("repo/job: scan: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

var _ JobRepository = (*jobRepo)(nil)
