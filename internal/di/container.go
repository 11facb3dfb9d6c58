// Package di provides dependency injection configuration for the BookHive server.
package di

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"

	"github.com/bookhive/bookhive-server/internal/config"
	"github.com/bookhive/bookhive-server/internal/di/providers"
	"github.com/bookhive/bookhive-server/internal/ingest"
	"github.com/bookhive/bookhive-server/internal/logger"
	"github.com/bookhive/bookhive-server/internal/metadata/kakao"
	"github.com/bookhive/bookhive-server/internal/metadata/seoji"
	"github.com/bookhive/bookhive-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Metadata clients
	do.Provide(injector, providers.ProvideSeojiClient)
	do.Provide(injector, providers.ProvideKakaoClient)

	// Ingestion pipeline
	do.Provide(injector, providers.ProvideMetricsRegistry)
	do.Provide(injector, providers.ProvideIngestMetrics)
	do.Provide(injector, providers.ProvideOrchestrator)

	// Business services
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideIngestService)

	// Workers
	do.Provide(injector, providers.ProvideScheduler)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*seoji.Client](injector)
	_ = do.MustInvoke[*kakao.Client](injector)
	_ = do.MustInvoke[*prometheus.Registry](injector)
	_ = do.MustInvoke[*ingest.Metrics](injector)
	_ = do.MustInvoke[*ingest.Orchestrator](injector)

	// Business services
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.IngestService](injector)

	// Workers
	_ = do.MustInvoke[*providers.SchedulerHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
