package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// PromptEventType represents the type of prompt change event.
type PromptEventType string

const (
	PromptEventTypeCommitted PromptEventType = "committed"
	PromptEventTypeActivated PromptEventType = "activated"
)

// PromptEvent notifies downstream consumers that the content behind a slug
// changed and any locally held copy should be dropped.
type PromptEvent struct {
	EventType     PromptEventType `json:"eventType"`
	Slug          string          `json:"slug"`
	PromptID      uuid.UUID       `json:"promptId"`
	VersionNumber int             `json:"versionNumber"`
}

// PromptEventPublisher defines the interface for publishing prompt change events.
type PromptEventPublisher interface {
	PublishPromptEvent(ctx context.Context, event PromptEvent) error
}
