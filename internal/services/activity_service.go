// Package services orchestrates repository mutations with the activity
// change event stream.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"fieldlog/internal/amqp"
	"fieldlog/internal/core"
	applog "fieldlog/internal/log"
	"fieldlog/internal/repo"
)

// ActivityService wraps activity mutations and announces each successful
// one on the event stream. The amqp client may be nil, which disables
// publishing; a publish failure is logged and never fails the mutation.
type ActivityService struct {
	repo       *repo.Repository
	amqpClient *amqp.Client
}

func NewActivityService(r *repo.Repository, amqpClient *amqp.Client) *ActivityService {
	return &ActivityService{
		repo:       r,
		amqpClient: amqpClient,
	}
}

// Create records a new activity and publishes a created event.
func (s *ActivityService) Create(ctx context.Context, a core.Activity) (core.Activity, error) {
	created, err := s.repo.AddActivity(ctx, a)
	if err != nil {
		return core.Activity{}, err
	}

	s.publish(ctx, created.ID, amqp.ChangeCreated)
	return created, nil
}

// Update patches an existing activity and publishes an updated event.
func (s *ActivityService) Update(ctx context.Context, id string, patch repo.ActivityPatch) (core.Activity, error) {
	updated, err := s.repo.UpdateActivity(ctx, id, patch)
	if err != nil {
		return core.Activity{}, err
	}

	s.publish(ctx, id, amqp.ChangeUpdated)
	return updated, nil
}

// Delete removes an activity and publishes a deleted event.
func (s *ActivityService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteActivity(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, id, amqp.ChangeDeleted)
	return nil
}

func (s *ActivityService) publish(ctx context.Context, id, change string) {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping change message",
			applog.FieldActivityID, id, "change", change)
		return
	}
	if err := s.amqpClient.PublishActivityChange(ctx, id, change); err != nil {
		slog.ErrorContext(ctx, "Failed to publish activity change",
			applog.FieldActivityID, id, "change", change, applog.FieldError, err)
		// The mutation already happened; the backup worker catches up on
		// its periodic flush.
	}
}

// Close releases the AMQP connection if one was configured.
func (s *ActivityService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("amqp: %w", err)
		}
	}
	return nil
}
