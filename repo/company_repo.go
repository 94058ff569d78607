package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/cedge2/jobly/db"
	"github.com/cedge2/jobly/models"
	"github.com/cedge2/jobly/sqlbuild"
)

// ─────────────────────────────────────────────────────────────────────────────
// CompanyRepository
// ─────────────────────────────────────────────────────────────────────────────

// CompanyRepository defines the contract for company persistence operations.
type CompanyRepository interface {
	Insert(ctx context.Context, params models.CreateCompanyParams) (*models.Company, error)
	GetByHandle(ctx context.Context, handle string) (*models.Company, error)
	List(ctx context.Context, filter models.CompanyFilter) ([]*models.Company, error)
	Update(ctx context.Context, params models.UpdateCompanyParams) (*models.Company, error)
	Delete(ctx context.Context, handle string) error
}

type companyRepo struct {
	q db.Querier
}

// NewCompanyRepo returns a CompanyRepository backed by q.
func NewCompanyRepo(q db.Querier) CompanyRepository {
	return &companyRepo{q: q}
}

// ─────────────────────────────────────────────────────────────────────────────
// SQL constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	sqlInsertCompany = `
		INSERT INTO companies (handle, name, description, num_employees, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING handle, name, description, num_employees, logo_url`

	sqlGetCompany = `
		SELECT handle, name, description, num_employees, logo_url
		FROM   companies
		WHERE  handle = $1
		LIMIT  1`

	sqlDeleteCompany = `
		DELETE FROM companies WHERE handle = $1`
)

// ─────────────────────────────────────────────────────────────────────────────
// Operations
// ─────────────────────────────────────────────────────────────────────────────

// Insert creates a company and returns the persisted record.
// Returns db.ErrDuplicateKey when the handle or name is taken.
func (r *companyRepo) Insert(ctx context.Context, params models.CreateCompanyParams) (*models.Company, error) {
	row := r.q.QueryRow(ctx, sqlInsertCompany,
		params.Handle, params.Name, params.Description, params.NumEmployees, params.LogoURL)
	return scanCompany(row)
}

// GetByHandle returns a single company by its handle.
// Returns db.ErrNotFound when no record matches.
func (r *companyRepo) GetByHandle(ctx context.Context, handle string) (*models.Company, error) {
	row := r.q.QueryRow(ctx, sqlGetCompany, handle)
	return scanCompany(row)
}

// List returns companies matching filter, ordered by handle. Filter
// conditions are assembled the same way partial updates are: parameterized
// fragments with positionally aligned args, never interpolated values.
func (r *companyRepo) List(ctx context.Context, filter models.CompanyFilter) ([]*models.Company, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if filter.NameLike != "" {
		args = append(args, "%"+filter.NameLike+"%")
		where = append(where, fmt.Sprintf("LOWER(name) LIKE LOWER($%d)", len(args)))
	}
	if filter.MinEmployees != nil {
		args = append(args, *filter.MinEmployees)
		where = append(where, fmt.Sprintf("num_employees >= $%d", len(args)))
	}
	if filter.MaxEmployees != nil {
		args = append(args, *filter.MaxEmployees)
		where = append(where, fmt.Sprintf("num_employees <= $%d", len(args)))
	}

	query := `
		SELECT handle, name, description, num_employees, logo_url
		FROM   companies`
	if len(where) > 0 {
		query += "\n\t\tWHERE  " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER  BY handle"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		c := &models.Company{}
		if err := rows.Scan(&c.Handle, &c.Name, &c.Description, &c.NumEmployees, &c.LogoURL); err != nil {
			return nil, fmt.Errorf("repo/company: scan: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// Update applies a partial update to a company. The SET clause comes from
// sqlbuild; the handle binds the placeholder after the clause's own.
//
// Returns sqlbuild.ErrNoUpdateData unchanged when params carries no fields.
func (r *companyRepo) Update(ctx context.Context, params models.UpdateCompanyParams) (*models.Company, error) {
	clause, err := sqlbuild.ForPartialUpdate(params.UpdateData(), models.CompanyColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE companies
		SET    %s
		WHERE  handle = $%d
		RETURNING handle, name, description, num_employees, logo_url`,
		clause.SetCols, len(clause.Values)+1)
	args := append(clause.Values, params.Handle)

	row := r.q.QueryRow(ctx, query, args...)
	return scanCompany(row)
}

// Delete removes a company by handle; its jobs cascade.
// Returns db.ErrNotFound if no row was deleted.
func (r *companyRepo) Delete(ctx context.Context, handle string) error {
	res, err := r.q.Exec(ctx, sqlDeleteCompany, handle)
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

func scanCompany(row *db.Row) (*models.Company, error) {
	c := &models.Company{}
	err := row.Scan(&c.Handle, &c.Name, &c.Description, &c.NumEmployees, &c.LogoURL)
	if err != nil {
		return nil, fmt.Errorf("repo/company: %w", err)
	}
	return c, nil
}

var _ CompanyRepository = (*companyRepo)(nil)
