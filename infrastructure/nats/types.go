package nats

import "time"

// Stream and subject names
const (
	StreamName = "TASKBOARD_EVENTS"

	// SubjectEventsPrefix is followed by the event type, e.g.
	// taskboard.events.board.created.
	SubjectEventsPrefix = "taskboard.events"
	SubjectEventsAll    = SubjectEventsPrefix + ".>"

	StreamMaxAge = 7 * 24 * time.Hour
)

// EventSubject returns the subject an event type is published on.
func EventSubject(eventType string) string {
	return SubjectEventsPrefix + "." + eventType
}

// StreamInfo summarizes the event stream for the health endpoint.
type StreamInfo struct {
	Name     string `json:"name"`
	Messages uint64 `json:"messages"`
	Bytes    uint64 `json:"bytes"`
	FirstSeq uint64 `json:"first_seq"`
	LastSeq  uint64 `json:"last_seq"`
}
