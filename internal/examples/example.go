// Package examples implements the example domain for Annex. An example is
// one unit of annotatable content within a project: inline text for
// text-based projects, or an uploaded file for speech and image projects.
package examples

import (
	"io"
	"time"
)

// Example is one annotatable item within a project.
type Example struct {
	ID          int64          `json:"id"`
	ProjectID   int64          `json:"project_id"`
	Text        string         `json:"text"`
	Filename    string         `json:"filename"`
	UploadKey   *string        `json:"upload_key,omitempty"`
	ContentType *string        `json:"content_type,omitempty"`
	SizeBytes   int64          `json:"size_bytes"`
	PageCount   *int           `json:"page_count,omitempty"`
	Meta        map[string]any `json:"meta"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Approval records one annotator's sign-off on an example.
type Approval struct {
	ID        int64     `json:"id"`
	ExampleID int64     `json:"example_id"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Progress summarizes how far a project's corpus has moved through review.
// An example counts as approved when it has at least one recorded approval.
type Progress struct {
	Total     int64 `json:"total"`
	Approved  int64 `json:"approved"`
	Remaining int64 `json:"remaining"`
}

// CreateCommand carries the data needed to add a text example.
type CreateCommand struct {
	Text string         `json:"text"`
	Meta map[string]any `json:"meta"`
}

// UploadCommand carries a decoded file upload.
type UploadCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	PageCount   *int
	Meta        map[string]any
}

// Media is an example's uploaded content opened for download. The caller
// closes Body.
type Media struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}
