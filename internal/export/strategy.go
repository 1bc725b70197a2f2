package export

import (
	"context"
	"strings"

	"github.com/annexlabs/annex/internal/examples"
	"github.com/annexlabs/annex/internal/projects"
)

// strategy fixes, per project type, how a record's data field is derived and
// which annotation collection supplies its labels. Relations participate
// only in sequence labeling.
type strategy struct {
	data      func(ex *examples.Example) string
	labels    func(ctx context.Context, src AnnotationSource, exampleID int64) (*Grouping[Label], error)
	relations bool
}

var strategies = map[projects.Type]strategy{
	projects.TypeTextClassification:  {data: textData, labels: categoryLabels},
	projects.TypeSequenceLabeling:    {data: textData, labels: spanLabels, relations: true},
	projects.TypeSeq2seq:             {data: textData, labels: textLabels},
	projects.TypeSpeechToText:        {data: fileData, labels: textLabels},
	projects.TypeImageClassification: {data: fileData, labels: categoryLabels},
}

func textData(ex *examples.Example) string {
	return ex.Text
}

// fileData keeps the final path segment of the stored filename, even when
// that segment is empty.
func fileData(ex *examples.Example) string {
	parts := strings.Split(ex.Filename, "/")
	return parts[len(parts)-1]
}

func categoryLabels(ctx context.Context, src AnnotationSource, exampleID int64) (*Grouping[Label], error) {
	items, err := src.ListCategories(ctx, exampleID)
	if err != nil {
		return nil, err
	}

	g := NewGrouping[Label]()
	for _, a := range items {
		g.Add(a.UserName, TextLabel(a.Label))
	}
	return g, nil
}

func spanLabels(ctx context.Context, src AnnotationSource, exampleID int64) (*Grouping[Label], error) {
	items, err := src.ListSpans(ctx, exampleID)
	if err != nil {
		return nil, err
	}

	g := NewGrouping[Label]()
	for _, a := range items {
		g.Add(a.UserName, SpanLabel{
			Start: a.StartOffset,
			End:   a.EndOffset,
			Label: a.Label,
		})
	}
	return g, nil
}

func textLabels(ctx context.Context, src AnnotationSource, exampleID int64) (*Grouping[Label], error) {
	items, err := src.ListTexts(ctx, exampleID)
	if err != nil {
		return nil, err
	}

	g := NewGrouping[Label]()
	for _, a := range items {
		g.Add(a.UserName, TextLabel(a.Text))
	}
	return g, nil
}
