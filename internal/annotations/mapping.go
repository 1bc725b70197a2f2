package annotations

import "github.com/annexlabs/annex/pkg/repository"

func scanCategory(s repository.Scanner) (Category, error) {
	var c Category
	err := s.Scan(
		&c.ID,
		&c.ExampleID,
		&c.LabelID,
		&c.Label,
		&c.UserName,
		&c.CreatedAt,
	)
	return c, err
}

func scanSpan(s repository.Scanner) (Span, error) {
	var sp Span
	err := s.Scan(
		&sp.ID,
		&sp.ExampleID,
		&sp.StartOffset,
		&sp.EndOffset,
		&sp.LabelID,
		&sp.Label,
		&sp.UserName,
		&sp.CreatedAt,
	)
	return sp, err
}

func scanText(s repository.Scanner) (TextAnnotation, error) {
	var t TextAnnotation
	err := s.Scan(
		&t.ID,
		&t.ExampleID,
		&t.Text,
		&t.UserName,
		&t.CreatedAt,
	)
	return t, err
}

func scanRelation(s repository.Scanner) (Relation, error) {
	var r Relation
	err := s.Scan(
		&r.ID,
		&r.ProjectID,
		&r.FromSpanID,
		&r.ToSpanID,
		&r.TypeID,
		&r.Type,
		&r.UserName,
		&r.CreatedAt,
	)
	return r, err
}
