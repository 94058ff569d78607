package repo

import (
	"context"
	"fmt"

	"github.com/cedge2/jobly/db"
	"github.com/cedge2/jobly/models"
	"github.com/cedge2/jobly/sqlbuild"
)

// ─────────────────────────────────────────────────────────────────────────────
// UserRepository
// ─────────────────────────────────────────────────────────────────────────────

// UserRepository defines the contract for user persistence operations.
type UserRepository interface {
	Insert(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
	Update(ctx context.Context, params models.UpdateUserParams) (*models.User, error)
	Delete(ctx context.Context, username string) error
	Count(ctx context.Context) (int64, error)
}

// userRepo is the production implementation backed by a db.Querier.
type userRepo struct {
	q db.Querier
}

// NewUserRepo returns a UserRepository backed by q.
// q can be a *db.DB or *db.Tx — both satisfy db.Querier.
func NewUserRepo(q db.Querier) UserRepository {
	return &userRepo{q: q}
}

// ─────────────────────────────────────────────────────────────────────────────
// SQL constants — all static SQL is explicit and reviewable
// ─────────────────────────────────────────────────────────────────────────────

const (
	sqlInsertUser = `
		INSERT INTO users (username, first_name, last_name, email, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING username, first_name, last_name, email, is_admin`

	sqlGetUser = `
		SELECT username, first_name, last_name, email, is_admin
		FROM   users
		WHERE  username = $1
		LIMIT  1`

	sqlListUsers = `
		SELECT username, first_name, last_name, email, is_admin
		FROM   users
		ORDER  BY username
		LIMIT  $1 OFFSET $2`

	sqlDeleteUser = `
		DELETE FROM users WHERE username = $1`

	sqlCountUsers = `
		SELECT COUNT(*) FROM users`
)

// ─────────────────────────────────────────────────────────────────────────────
// Operations
// ─────────────────────────────────────────────────────────────────────────────

// Insert creates a new user and returns the persisted record.
// Returns db.ErrDuplicateKey when the username or email is taken.
func (r *userRepo) Insert(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	row := r.q.QueryRow(ctx, sqlInsertUser,
		params.Username, params.FirstName, params.LastName, params.Email, params.IsAdmin)
	return scanUser(row)
}

// GetByUsername returns a single user by primary key.
// Returns db.ErrNotFound when no record matches.
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.q.QueryRow(ctx, sqlGetUser, username)
	return scanUser(row)
}

// List returns a paginated slice of users ordered by username.
func (r *userRepo) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	rows, err := r.q.Query(ctx, sqlListUsers, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin); err != nil {
			return nil, fmt.Errorf("repo/user: scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update applies a partial update: only non-nil params fields change. The SET
// clause and its bindings come from sqlbuild, so the clause stays aligned with
// the argument order; the WHERE binding takes the next placeholder after the
// clause's own.
//
// Returns sqlbuild.ErrNoUpdateData unchanged when params carries no fields —
// callers surface it as a bad request.
func (r *userRepo) Update(ctx context.Context, params models.UpdateUserParams) (*models.User, error) {
	clause, err := sqlbuild.ForPartialUpdate(params.UpdateData(), models.UserColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET    %s
		WHERE  username = $%d
		RETURNING username, first_name, last_name, email, is_admin`,
		clause.SetCols, len(clause.Values)+1)
	args := append(clause.Values, params.Username)

	row := r.q.QueryRow(ctx, query, args...)
	return scanUser(row)
}

// Delete removes a user by username.
// Returns db.ErrNotFound if no row was deleted.
func (r *userRepo) Delete(ctx context.Context, username string) error {
	res, err := r.q.Exec(ctx, sqlDeleteUser, username)
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

// Count returns the total number of users.
func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, sqlCountUsers).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// scanUser centralises row mapping so column changes touch one place.
func scanUser(row *db.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("repo/user: %w", err)
	}
	return u, nil
}

var _ UserRepository = (*userRepo)(nil)
