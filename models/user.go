package models

import "github.com/cedge2/jobly/sqlbuild"

// User represents a row in the "users" table, keyed by username.
// Fields map 1-to-1 with columns; no automatic relation loading.
type User struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

// UserColumns maps API-facing camelCase field names to their columns.
// Declared once per entity and treated as a static, trusted table; fields
// absent here already match their column name.
var UserColumns = sqlbuild.ColumnMap{
	"firstName": "first_name",
	"lastName":  "last_name",
	"isAdmin":   "is_admin",
}

// CreateUserParams holds the fields required to create a new user.
// Keeping input types separate from the domain model prevents accidental
// mass-assignment and makes API contracts explicit.
type CreateUserParams struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

// UpdateUserParams holds the fields that can change on an existing user.
// All fields are pointers so callers only set what needs changing; the
// repository builds the SET clause from exactly the non-nil ones.
type UpdateUserParams struct {
	Username  string
	FirstName *string
	LastName  *string
	Email     *string
	IsAdmin   *bool
}

// UpdateData converts the non-nil fields into ordered clause-builder input.
// Declaration order here fixes placeholder order in the generated SQL.
func (p UpdateUserParams) UpdateData() *sqlbuild.UpdateData {
	data := sqlbuild.NewUpdateData()
	if p.FirstName != nil {
		data.Set("firstName", *p.FirstName)
	}
	if p.LastName != nil {
		data.Set("lastName", *p.LastName)
	}
	if p.Email != nil {
		data.Set("email", *p.Email)
	}
	if p.IsAdmin != nil {
		data.Set("isAdmin", *p.IsAdmin)
	}
	return data
}
