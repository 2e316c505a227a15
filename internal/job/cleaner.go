package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/0Rorschach1/midterm-exam/internal/service"
)

// CleanerJob periodically purges expired URLs through the service sweep
type CleanerJob struct {
	svc     service.URLShortener
	timeout time.Duration
	logger  *zap.Logger
}

// NewCleanerJob creates a cleaner with a per-run timeout
func NewCleanerJob(svc service.URLShortener, timeout time.Duration, logger *zap.Logger) *CleanerJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleanerJob{
		svc:     svc,
		timeout: timeout,
		logger:  logger,
	}
}

// Name returns the job identifier
func (j *CleanerJob) Name() string {
	return "cleaner"
}

// Run executes one sweep pass
func (j *CleanerJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	deleted, err := j.svc.CleanupExpired(ctx)
	if err != nil {
		j.logger.Error("expired URL sweep failed", zap.Error(err))
		return
	}

	j.logger.Debug("expired URL sweep finished", zap.Int64("deleted", deleted))
}

// Ensure CleanerJob implements Job
var _ Job = (*CleanerJob)(nil)
