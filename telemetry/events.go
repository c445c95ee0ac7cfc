// Package telemetry provides per-generation tracking, milestones and experiment output.
package telemetry

import "github.com/pthm-cable/biogenesis/organism"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventDeath EventType = iota
	EventSpontaneousMutation
	EventEditApplied
	EventEditRejected
	EventExtinction
)

func (t EventType) String() string {
	switch t {
	case EventDeath:
		return "death"
	case EventSpontaneousMutation:
		return "spontaneous_mutation"
	case EventEditApplied:
		return "edit_applied"
	case EventEditRejected:
		return "edit_rejected"
	case EventExtinction:
		return "extinction"
	default:
		return "unknown"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type       EventType
	Generation int
	OrganismID uint32

	// Optional fields depending on event type
	Cause    organism.DeathCause // death events
	Position int                 // mutation and edit events
	Symbol   byte                // mutation and edit events
}

// NewDeathEvent creates a death event.
func NewDeathEvent(generation int, id uint32, cause organism.DeathCause) Event {
	return Event{
		Type:       EventDeath,
		Generation: generation,
		OrganismID: id,
		Cause:      cause,
	}
}

// NewMutationEvent creates a spontaneous mutation event.
func NewMutationEvent(generation int, id uint32, pos int, sym byte) Event {
	return Event{
		Type:       EventSpontaneousMutation,
		Generation: generation,
		OrganismID: id,
		Position:   pos,
		Symbol:     sym,
	}
}

// NewEditEvent creates a player edit event. applied is false for rejected edits.
func NewEditEvent(generation int, id uint32, pos int, sym byte, applied bool) Event {
	typ := EventEditApplied
	if !applied {
		typ = EventEditRejected
	}
	return Event{
		Type:       typ,
		Generation: generation,
		OrganismID: id,
		Position:   pos,
		Symbol:     sym,
	}
}

// NewExtinctionEvent marks the generation the last organism died.
func NewExtinctionEvent(generation int) Event {
	return Event{
		Type:       EventExtinction,
		Generation: generation,
	}
}
