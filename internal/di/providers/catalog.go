package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookscoutapp/bookscout-server/internal/catalog/googlebooks"
	"github.com/bookscoutapp/bookscout-server/internal/config"
	"github.com/bookscoutapp/bookscout-server/internal/logger"
)

// CatalogClientHandle wraps the Google Books client with shutdown capability.
type CatalogClientHandle struct {
	*googlebooks.Client
}

// Shutdown implements do.Shutdownable.
func (h *CatalogClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideCatalogClient provides the Google Books catalog client.
func ProvideCatalogClient(i do.Injector) (*CatalogClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := googlebooks.NewClient(cfg.Catalog.APIKey, cfg.Catalog.BaseURL, log.Logger)

	if cfg.Catalog.APIKey == "" {
		log.Warn("No Google Books API key configured, using public quota")
	}

	return &CatalogClientHandle{Client: client}, nil
}
