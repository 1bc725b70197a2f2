package api

import (
	"net/http"

	"github.com/annexlabs/annex/internal/config"
	"github.com/annexlabs/annex/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	store := newStorageHandler(
		runtime.Storage,
		runtime.Logger,
		cfg.Storage.MaxListSize,
	)

	routes.Register(
		mux,
		domain.Projects.Handler().Routes(),
		domain.Labels.Handler().Routes(),
		domain.Examples.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Annotations.Handler().Routes(),
		domain.Export.Handler().Routes(),
		store.routes(),
	)
}
