package labels

import "context"

// System defines the public contract for label catalog operations. All
// operations are scoped to a single project.
type System interface {
	Handler() *Handler

	ListLabelTypes(ctx context.Context, projectID int64) ([]LabelType, error)
	FindLabelType(ctx context.Context, projectID, id int64) (*LabelType, error)
	CreateLabelType(ctx context.Context, projectID int64, cmd CreateLabelTypeCommand) (*LabelType, error)
	UpdateLabelType(ctx context.Context, projectID, id int64, cmd UpdateLabelTypeCommand) (*LabelType, error)
	DeleteLabelType(ctx context.Context, projectID, id int64) error

	ListRelationTypes(ctx context.Context, projectID int64) ([]RelationType, error)
	CreateRelationType(ctx context.Context, projectID int64, cmd CreateRelationTypeCommand) (*RelationType, error)
	DeleteRelationType(ctx context.Context, projectID, id int64) error
}
