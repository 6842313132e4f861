// Package jobs provides scheduled background tasks.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and are grouped by
// JobManager:
//
//	manager := jobs.NewJobManager(logger)
//	manager.Register("outbox_relay", jobs.NewOutboxRelayJob(relayHandler, schedule, 100, logger))
//	if err := manager.StartAll(); err != nil {
//		log.Fatal(err)
//	}
//	defer manager.StopAll()
//
// # Available Jobs
//
// OutboxRelayJob moves events written to the outbox table by committed
// transactions to Kafka. Delivery is at least once; consumers deduplicate by
// the event-id header.
package jobs
