// Package projects implements the project domain for Annex.
// It provides types, data access, and HTTP handlers for managing labeling
// projects, including their annotation type and collaboration mode.
package projects

import "time"

// Project represents a labeling project. Type fixes the annotation shape the
// project collects; Collaborative controls whether annotator identity is
// preserved in exports.
type Project struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Type          Type      `json:"project_type"`
	Collaborative bool      `json:"collaborative_annotation"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateCommand carries the data needed to create a project.
type CreateCommand struct {
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Type          Type    `json:"project_type"`
	Collaborative bool    `json:"collaborative_annotation"`
}

// UpdateCommand carries the data needed to update a project. The project
// type is fixed at creation; changing it would orphan existing annotations.
type UpdateCommand struct {
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Collaborative bool    `json:"collaborative_annotation"`
}
