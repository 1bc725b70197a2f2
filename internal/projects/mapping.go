package projects

import (
	"net/url"
	"strconv"

	"github.com/annexlabs/annex/pkg/query"
	"github.com/annexlabs/annex/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "projects", "p").
	Project("id", "ID").
	Project("name", "Name").
	Project("description", "Description").
	Project("project_type", "Type").
	Project("collaborative_annotation", "Collaborative").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters contains optional filtering criteria for project queries.
// Nil fields are ignored. Type and Collaborative use exact matching;
// Name uses case-insensitive contains matching.
type Filters struct {
	Type          *Type   `json:"project_type,omitempty"`
	Name          *string `json:"name,omitempty"`
	Collaborative *bool   `json:"collaborative_annotation,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Type", f.Type).
		WhereContains("Name", f.Name).
		WhereEquals("Collaborative", f.Collaborative)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("project_type"); s != "" {
		if t, err := ParseType(s); err == nil {
			f.Type = &t
		}
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if c := values.Get("collaborative_annotation"); c != "" {
		if v, err := strconv.ParseBool(c); err == nil {
			f.Collaborative = &v
		}
	}

	return f
}

func scanProject(s repository.Scanner) (Project, error) {
	var p Project
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Type,
		&p.Collaborative,
		&p.CreatedAt,
	)
	return p, err
}
