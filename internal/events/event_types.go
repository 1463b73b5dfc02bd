package events

import (
	"time"

	"github.com/spec-kit/happyfarm/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAnimalCreated    EventType = "animal_created"
	EventAnimalFed        EventType = "animal_fed"
	EventAnimalGroomed    EventType = "animal_groomed"
	EventAnimalSacrificed EventType = "animal_sacrificed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	AnimalID  string         `json:"animal_id"`
	FarmID    string         `json:"farm_id"`
	ActorID   string         `json:"actor_id"`
	Species   domain.Species `json:"species"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   interface{}    `json:"payload,omitempty"`
}

// AnimalCreatedPayload payload.
type AnimalCreatedPayload struct {
	Name string `json:"name"`
	Age  string `json:"age"`
}

// AnimalSacrificedPayload payload.
type AnimalSacrificedPayload struct {
	Name string `json:"name"`
	Age  string `json:"age"`
}
