package models

import "github.com/cedge2/jobly/sqlbuild"

// Company represents a row in the "companies" table, keyed by handle.
type Company struct {
	Handle       string
	Name         string
	Description  string
	NumEmployees *int64
	LogoURL      *string
}

// CompanyColumns maps API-facing field names to their columns.
var CompanyColumns = sqlbuild.ColumnMap{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// CreateCompanyParams holds the fields required to create a company.
type CreateCompanyParams struct {
	Handle       string
	Name         string
	Description  string
	NumEmployees *int64
	LogoURL      *string
}

// UpdateCompanyParams holds the fields that can change on a company.
// Nil pointers are left untouched.
type UpdateCompanyParams struct {
	Handle       string
	Name         *string
	Description  *string
	NumEmployees *int64
	LogoURL      *string
}

// UpdateData converts the non-nil fields into ordered clause-builder input.
func (p UpdateCompanyParams) UpdateData() *sqlbuild.UpdateData {
	data := sqlbuild.NewUpdateData()
	if p.Name != nil {
		data.Set("name", *p.Name)
	}
	if p.Description != nil {
		data.Set("description", *p.Description)
	}
	if p.NumEmployees != nil {
		data.Set("numEmployees", *p.NumEmployees)
	}
	if p.LogoURL != nil {
		data.Set("logoUrl", *p.LogoURL)
	}
	return data
}

// CompanyFilter narrows List results. Zero-value fields are ignored.
type CompanyFilter struct {
	// NameLike matches company names case-insensitively by substring.
	NameLike string
	// MinEmployees / MaxEmployees bound num_employees inclusively.
	MinEmployees *int64
	MaxEmployees *int64
}
