package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	domainerrors "photocontest/contexts/moderation-safety/moderation-service/domain/errors"
	"photocontest/contexts/moderation-safety/moderation-service/ports"
	"photocontest/contracts/identity"
)

const (
	EventPhotoApproved  = "photo.approved"
	EventPhotoRejected  = "photo.rejected"
	EventPhotoDeleted   = "photo.deleted"
	EventReportResolved = "report.resolved"
)

type Service struct {
	Repo      ports.Repository
	Files     ports.FileStorage
	Publisher ports.EventPublisher
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func requireAdmin(actor identity.Actor) error {
	if !actor.Authenticated() {
		return domainerrors.ErrUnauthenticated
	}
	if !actor.IsAdmin {
		return domainerrors.ErrForbidden
	}
	return nil
}

func requireID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", domainerrors.ErrIdentifierRequired
	}
	return id, nil
}

// publish is best effort: the state change is already committed, so a bus
// failure is logged and swallowed.
func (s Service) publish(ctx context.Context, eventType string, competitionID string, occurredAt time.Time, data map[string]any) {
	if s.Publisher == nil {
		return
	}
	logger := resolveLogger(s.Logger)
	eventID := ""
	if s.IDGen != nil {
		if id, err := s.IDGen.NewID(ctx); err == nil {
			eventID = id
		}
	}
	payload, err := json.Marshal(data)
	if err == nil {
		err = s.Publisher.Publish(ctx, eventType, ports.EventEnvelope{
			EventID:          eventID,
			EventType:        eventType,
			OccurredAt:       occurredAt.UTC(),
			SourceService:    "moderation-service",
			TraceID:          eventID,
			SchemaVersion:    1,
			PartitionKeyPath: "competition_id",
			PartitionKey:     competitionID,
			Data:             payload,
		})
	}
	if err != nil {
		logger.Warn("moderation event publish failed",
			"event", "moderation_event_publish_failed",
			"module", moduleName,
			"layer", "application",
			"event_type", eventType,
			"error", err.Error(),
		)
	}
}
