package commands

import (
	"encoding/json"
	"time"

	"photocontest/contexts/photo-contest/voting-engine/ports"
)

const EventVoteCast = "vote.cast"

func newVotingEnvelope(
	eventID string,
	eventType string,
	competitionID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Partitioned by competition so live feed consumers see one ordered stream
	// per contest.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "voting-engine",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "competition_id",
		PartitionKey:     competitionID,
		Data:             payload,
	}, nil
}
