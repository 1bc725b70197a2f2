package api

import (
	"github.com/annexlabs/annex/internal/annotations"
	"github.com/annexlabs/annex/internal/examples"
	"github.com/annexlabs/annex/internal/export"
	"github.com/annexlabs/annex/internal/labels"
	"github.com/annexlabs/annex/internal/projects"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Projects    projects.System
	Labels      labels.System
	Examples    examples.System
	Annotations annotations.System
	Export      export.System
}

// NewDomain creates all domain systems from the API runtime. The export
// system composes the project, example, and annotation systems as its
// sources.
func NewDomain(runtime *Runtime) *Domain {
	projectsSystem := projects.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	labelsSystem := labels.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	examplesSystem := examples.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	annotationsSystem := annotations.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	exportSystem := export.New(
		projectsSystem,
		examplesSystem,
		annotationsSystem,
		annotationsSystem,
		runtime.Logger,
	)

	return &Domain{
		Projects:    projectsSystem,
		Labels:      labelsSystem,
		Examples:    examplesSystem,
		Annotations: annotationsSystem,
		Export:      exportSystem,
	}
}
