package labels

import "github.com/annexlabs/annex/pkg/repository"

func scanLabelType(s repository.Scanner) (LabelType, error) {
	var lt LabelType
	err := s.Scan(
		&lt.ID,
		&lt.ProjectID,
		&lt.Text,
		&lt.BackgroundColor,
		&lt.TextColor,
	)
	return lt, err
}

func scanRelationType(s repository.Scanner) (RelationType, error) {
	var rt RelationType
	err := s.Scan(
		&rt.ID,
		&rt.ProjectID,
		&rt.Name,
	)
	return rt, err
}
