package examples

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/annexlabs/annex/pkg/query"
	"github.com/annexlabs/annex/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "examples", "e").
	Project("id", "ID").
	Project("project_id", "ProjectID").
	Project("text", "Text").
	Project("filename", "Filename").
	Project("upload_key", "UploadKey").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("meta", "Meta").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field: "ID",
}

const approvedSubquery = "SELECT 1 FROM public.example_approvals a WHERE a.example_id = e.id"

// Filters contains optional filtering criteria for example queries. Nil
// fields are ignored. Approved selects examples with (true) or without
// (false) at least one recorded approval.
type Filters struct {
	Approved *bool `json:"approved,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Approved != nil {
		if *f.Approved {
			return b.WhereExists(approvedSubquery)
		}
		return b.WhereNotExists(approvedSubquery)
	}
	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("approved"); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			f.Approved = &v
		}
	}

	return f
}

func scanExample(s repository.Scanner) (Example, error) {
	var (
		ex   Example
		meta []byte
	)

	err := s.Scan(
		&ex.ID,
		&ex.ProjectID,
		&ex.Text,
		&ex.Filename,
		&ex.UploadKey,
		&ex.ContentType,
		&ex.SizeBytes,
		&ex.PageCount,
		&meta,
		&ex.CreatedAt,
	)
	if err != nil {
		return ex, err
	}

	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &ex.Meta); err != nil {
			return ex, fmt.Errorf("decode example meta: %w", err)
		}
	}
	if ex.Meta == nil {
		ex.Meta = map[string]any{}
	}

	return ex, nil
}

func scanApproval(s repository.Scanner) (Approval, error) {
	var a Approval
	err := s.Scan(
		&a.ID,
		&a.ExampleID,
		&a.UserName,
		&a.CreatedAt,
	)
	return a, err
}
