// Package labels implements the label catalog domain for Annex.
// Each project defines the label types annotators may assign and, for
// sequence labeling projects, the relation types that may link spans.
package labels

// LabelType is one assignable label within a project's catalog.
type LabelType struct {
	ID              int64  `json:"id"`
	ProjectID       int64  `json:"project_id"`
	Text            string `json:"text"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
}

// RelationType names a kind of link between two spans.
type RelationType struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Name      string `json:"name"`
}

// CreateLabelTypeCommand carries the data needed to add a label type to a
// project's catalog.
type CreateLabelTypeCommand struct {
	Text            string `json:"text"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
}

// UpdateLabelTypeCommand carries the data needed to update a label type.
type UpdateLabelTypeCommand struct {
	Text            string `json:"text"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
}

// CreateRelationTypeCommand carries the data needed to add a relation type.
type CreateRelationTypeCommand struct {
	Name string `json:"name"`
}
