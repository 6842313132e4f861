package jobs

import (
	"context"
	"log/slog"
	"time"

	"salesorder/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	DefaultRelaySchedule = "*/2 * * * * *"

	maxBatchesPerTick = 10
	tickTimeout       = 30 * time.Second
)

type OutboxRelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob publishes pending outbox messages on a cron schedule. A tick
// keeps draining while full batches come back, up to maxBatchesPerTick.
// Overlapping ticks are skipped.
type OutboxRelayJob struct {
	handler   OutboxRelayHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates a job that relays up to batchSize messages per batch
// on schedule, a cron expression with seconds.
func NewOutboxRelayJob(handler OutboxRelayHandler, schedule string, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}
	return &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Start validates the configuration and starts the scheduler.
func (j *OutboxRelayJob) Start() error {
	if _, err := commands.NewRelayOutboxCommand(j.batchSize); err != nil {
		return err
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
		defer cancel()
		j.runOnce(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Stop waits for a running tick to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) runOnce(ctx context.Context) int {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay misconfigured", "error", err)
		return 0
	}

	total := 0
	for range maxBatchesPerTick {
		sent, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err, "sent", total)
			return total
		}
		total += sent
		if sent < j.batchSize {
			break
		}
	}

	if total > 0 {
		j.logger.DebugContext(ctx, "Outbox messages relayed", "sent", total)
	}
	return total
}
