package game

import (
	"encoding/json"
	"time"
)

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeCapture           // A region was removed
	EventTypeVoid              // A capture attempt removed nothing
	EventTypeLevelStart
	EventTypeLevelComplete
	EventTypeLifeLost
	EventTypeGameOver
)

// EventVersion for backwards compatibility of journal readers
const EventVersion uint8 = 1

// Event is one line of the capture journal
type Event struct {
	Version   uint8           `json:"version"`   // Schema version
	Type      EventType       `json:"type"`      // Event type
	Timestamp int64           `json:"timestamp"` // Unix nano
	Sequence  uint64          `json:"sequence"`  // Monotonic sequence
	TickNum   uint64          `json:"tickNum"`   // Simulation tick this occurred in
	Payload   json.RawMessage `json:"payload"`   // JSON-encoded payload
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeCapture:
		return "capture"
	case EventTypeVoid:
		return "void"
	case EventTypeLevelStart:
		return "level_start"
	case EventTypeLevelComplete:
		return "level_complete"
	case EventTypeLifeLost:
		return "life_lost"
	case EventTypeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Typed payloads for different event types

// CapturePayload describes one capture attempt
type CapturePayload struct {
	Outcome     string  `json:"outcome"`
	Cells       int     `json:"cells"`    // Newly cut cells
	Enclosed    int     `json:"enclosed"` // Cells inside the trail polygon
	TrailPoints int     `json:"trailPoints"`
	Hostiles    int     `json:"hostiles"`
	Coverage    float64 `json:"coverage"`
}

// LevelPayload describes a level transition
type LevelPayload struct {
	Level    int     `json:"level"`
	Score    int     `json:"score"`
	Lives    int     `json:"lives"`
	Coverage float64 `json:"coverage"`
}

// EncodePayload marshals a payload to JSON bytes
func EncodePayload(payload interface{}) json.RawMessage {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent creates a new event stamped with now
func NewEvent(eventType EventType, tickNum uint64, now time.Time, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: now.UnixNano(),
		TickNum:   tickNum,
		Payload:   EncodePayload(payload),
	}
}
