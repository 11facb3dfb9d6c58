package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"

	"github.com/bookhive/bookhive-server/internal/config"
	"github.com/bookhive/bookhive-server/internal/ingest"
	"github.com/bookhive/bookhive-server/internal/logger"
	"github.com/bookhive/bookhive-server/internal/metadata/kakao"
	"github.com/bookhive/bookhive-server/internal/metadata/seoji"
	"github.com/bookhive/bookhive-server/internal/scheduler"
)

// ProvideMetricsRegistry provides the Prometheus registry.
func ProvideMetricsRegistry(i do.Injector) (*prometheus.Registry, error) {
	return prometheus.NewRegistry(), nil
}

// ProvideIngestMetrics provides the ingestion metrics.
func ProvideIngestMetrics(i do.Injector) (*ingest.Metrics, error) {
	registry := do.MustInvoke[*prometheus.Registry](i)
	return ingest.NewMetrics(registry), nil
}

// ProvideOrchestrator provides the ingestion orchestrator.
func ProvideOrchestrator(i do.Injector) (*ingest.Orchestrator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	feedClient := do.MustInvoke[*seoji.Client](i)
	searchClient := do.MustInvoke[*kakao.Client](i)
	metrics := do.MustInvoke[*ingest.Metrics](i)

	orchestrator := ingest.NewOrchestrator(storeHandle.Store, feedClient, searchClient, ingest.Config{
		ChunkSize:     cfg.Ingest.ChunkSize,
		FeedPageSize:  cfg.Seoji.PageSize,
		QueryPageSize: cfg.Kakao.PageSize,
	}, metrics, log.Logger)

	return orchestrator, nil
}

// SchedulerHandle wraps the scheduler with shutdown capability.
type SchedulerHandle struct {
	*scheduler.Scheduler
	started bool
}

// Shutdown implements do.Shutdownable.
func (h *SchedulerHandle) Shutdown() error {
	if h.started {
		h.Stop()
	}
	return nil
}

// ProvideScheduler provides the daily ingestion scheduler.
func ProvideScheduler(i do.Injector) (*SchedulerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	orchestrator := do.MustInvoke[*ingest.Orchestrator](i)

	if !cfg.Ingest.ScheduleEnabled {
		log.Info("Ingest scheduler disabled by configuration")
		return &SchedulerHandle{started: false}, nil
	}

	sched := scheduler.New(orchestrator, cfg.Ingest.ScheduleHour, log.Logger)
	sched.Start()

	return &SchedulerHandle{Scheduler: sched, started: true}, nil
}
