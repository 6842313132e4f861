package jobs

import (
	"fmt"
	"log/slog"
)

type Job interface {
	Start() error
	Stop()
}

// JobManager starts and stops the background jobs as a group.
type JobManager struct {
	jobs   map[string]Job
	order  []string
	logger *slog.Logger
}

// NewJobManager creates an empty manager.
func NewJobManager(logger *slog.Logger) *JobManager {
	return &JobManager{
		jobs:   make(map[string]Job),
		logger: logger.With("component", "job_manager"),
	}
}

// Register adds job under name. Registering a name twice replaces the job.
func (jm *JobManager) Register(name string, job Job) {
	if _, ok := jm.jobs[name]; !ok {
		jm.order = append(jm.order, name)
	}
	jm.jobs[name] = job
}

// StartAll starts jobs in registration order. If one fails, the ones already
// started are stopped.
func (jm *JobManager) StartAll() error {
	for i, name := range jm.order {
		if err := jm.jobs[name].Start(); err != nil {
			for _, started := range jm.order[:i] {
				jm.jobs[started].Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", name, err)
		}
	}
	return nil
}

// StopAll stops jobs in reverse registration order.
func (jm *JobManager) StopAll() {
	for i := len(jm.order) - 1; i >= 0; i-- {
		jm.jobs[jm.order[i]].Stop()
	}
	jm.logger.Info("all jobs stopped")
}
