// Package outboxrepo stores domain events in the outbox table until the relay
// publishes them.
package outboxrepo

import (
	"context"
	"encoding/json"
	"time"

	"salesorder/internal/adapters/out/postgres/pgerr"
	"salesorder/internal/core/ports"
	"salesorder/internal/pkg/ddd"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OutboxDTO struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	EventID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Name      string     `gorm:"not null"`
	Key       string     `gorm:"not null"`
	Payload   []byte     `gorm:"type:jsonb;not null"`
	CreatedAt time.Time  `gorm:"not null"`
	SentAt    *time.Time `gorm:"index"`
}

func (OutboxDTO) TableName() string {
	return "outbox"
}

type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// AddEvents serialises events as JSON rows keyed by their aggregate id.
func (r *GormOutboxRepository) AddEvents(ctx context.Context, at time.Time, events ...ddd.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxDTO, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return err
		}
		dtos = append(dtos, OutboxDTO{
			EventID:   e.EventID(),
			Name:      e.EventName(),
			Key:       e.AggregateID().String(),
			Payload:   payload,
			CreatedAt: at.UTC(),
		})
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return pgerr.Translate(err, "outbox")
	}
	return nil
}

// FetchPending locks up to limit unsent messages, oldest first. Rows locked by
// another relay are skipped.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate, Options: clause.LockingOptionsSkipLocked}).
		Where("sent_at IS NULL").
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Translate(err, "outbox")
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, ports.OutboxMessage{
			ID:        dto.ID,
			EventID:   dto.EventID,
			Name:      dto.Name,
			Key:       dto.Key,
			Payload:   dto.Payload,
			CreatedAt: dto.CreatedAt,
		})
	}
	return messages, nil
}

// MarkSent stamps the given messages with at.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id IN ?", ids).
		Update("sent_at", at.UTC()).Error
	return pgerr.Translate(err, "outbox")
}
