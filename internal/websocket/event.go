package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to an entity
type EventType string

const (
	EventTypeCreated  EventType = "created"
	EventTypeUpdated  EventType = "updated"
	EventTypeDeleted  EventType = "deleted"
	EventTypeArchived EventType = "archived"
)

// EntityType represents the kind of record the event is about
type EntityType string

const (
	EntityTypeCapitalAccount EntityType = "capital_account"
	EntityTypeCreditCard     EntityType = "credit_card"
	EntityTypeLoan           EntityType = "loan"
	EntityTypeHouse          EntityType = "house"
	EntityTypeHousehold      EntityType = "household"
	EntityTypeReport         EntityType = "report"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`   // e.g. "credit_card.created"
	Entity    EntityType  `json:"entity"` // e.g. "credit_card"
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Created creates an <entity>.created event
func Created(entity EntityType, payload interface{}) Event {
	return NewEvent(EventTypeCreated, entity, payload)
}

// Updated creates an <entity>.updated event
func Updated(entity EntityType, payload interface{}) Event {
	return NewEvent(EventTypeUpdated, entity, payload)
}

// Deleted creates an <entity>.deleted event. The payload carries only the id.
func Deleted(entity EntityType, id int32) Event {
	return NewEvent(EventTypeDeleted, entity, map[string]interface{}{"id": id})
}

// HouseholdBudgetUpdated creates a household.updated event
func HouseholdBudgetUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeHousehold, payload)
}

// ReportArchived creates a report.archived event
func ReportArchived(payload interface{}) Event {
	return NewEvent(EventTypeArchived, EntityTypeReport, payload)
}
