package jobs

import (
	"points-backend/internal/config"
	"points-backend/internal/logger"
	"points-backend/internal/repository/postgres"
	"points-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store    *postgres.Store
	products service.ProductClient
	config   *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, products service.ProductClient, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		products: products,
		config:   cfg,
	}
}

// Config exposes the configuration for schedule lookups
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
