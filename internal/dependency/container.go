// Package dependency wires the core excelaipro services using go.uber.org/dig.
package dependency

import (
	"net/http"

	"go.uber.org/dig"

	"github.com/excelaipro/excelaipro/internal/chat"
	"github.com/excelaipro/excelaipro/internal/config"
	"github.com/excelaipro/excelaipro/internal/httpapi"
	"github.com/excelaipro/excelaipro/internal/maintenance"
	"github.com/excelaipro/excelaipro/internal/providers"
	"github.com/excelaipro/excelaipro/internal/upload"
)

// Container holds the resolved service singletons. Callers use the typed
// getters; they never need to import dig directly.
type Container struct {
	handler     http.Handler
	maintenance *maintenance.Service
}

func (c *Container) Handler() http.Handler             { return c.handler }
func (c *Container) Maintenance() *maintenance.Service { return c.maintenance }

// New builds and wires all core services from cfg.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	for _, provide := range []any{
		func() *config.Config { return cfg },
		newProvider,
		newUploadStore,
		newOrchestrator,
		newMaintenance,
		newHandler,
		newRouter,
	} {
		if err := d.Provide(provide); err != nil {
			return nil, err
		}
	}

	var result *Container
	err := d.Invoke(func(handler http.Handler, maint *maintenance.Service) {
		result = &Container{handler: handler, maintenance: maint}
	})
	return result, err
}

func newProvider(cfg *config.Config) *providers.GroqProvider {
	return providers.NewGroqProvider(cfg.GroqAPIKey, cfg.GroqAPIBase)
}

func newUploadStore(cfg *config.Config) *upload.Store {
	return upload.NewStore(cfg.UploadDir)
}

func newOrchestrator(cfg *config.Config, p *providers.GroqProvider) *chat.Orchestrator {
	return chat.NewOrchestrator(cfg, p, chat.DialMCP)
}

func newMaintenance(cfg *config.Config, store *upload.Store) *maintenance.Service {
	return maintenance.NewService(cfg, store)
}

func newHandler(cfg *config.Config, orch *chat.Orchestrator, p *providers.GroqProvider, store *upload.Store) *httpapi.Handler {
	return httpapi.NewHandler(cfg, orch, p, store)
}

func newRouter(h *httpapi.Handler) http.Handler {
	return httpapi.NewRouter(h)
}
