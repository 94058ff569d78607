package models

import "github.com/cedge2/jobly/sqlbuild"

// Job represents a row in the "jobs" table.
type Job struct {
	ID            int64
	Title         string
	Salary        *int64
	Equity        *float64
	CompanyHandle string
}

// JobColumns maps API-facing field names to their columns. The company
// handle is the foreign key and is never updatable, so it has no entry.
var JobColumns = sqlbuild.ColumnMap{}

// CreateJobParams holds the fields required to post a job.
type CreateJobParams struct {
	Title         string
	Salary        *int64
	Equity        *float64
	CompanyHandle string
}

// UpdateJobParams holds the fields that can change on a job.
// The id and company handle are immutable.
type UpdateJobParams struct {
	ID     int64
	Title  *string
	Salary *int64
	Equity *float64
}

// UpdateData converts the non-nil fields into ordered clause-builder input.
func (p UpdateJobParams) UpdateData() *sqlbuild.UpdateData {
	data := sqlbuild.NewUpdateData()
	if p.Title != nil {
		data.Set("title", *p.Title)
	}
	if p.Salary != nil {
		data.Set("salary", *p.Salary)
	}
	if p.Equity != nil {
		data.Set("equity", *p.Equity)
	}
	return data
}

// JobFilter narrows List results. Zero-value fields are ignored.
type JobFilter struct {
	// TitleLike matches job titles case-insensitively by substring.
	TitleLike string
	// MinSalary bounds salary inclusively; jobs with NULL salary never match.
	MinSalary *int64
	// HasEquity, when true, keeps only jobs with equity > 0.
	HasEquity bool
}
