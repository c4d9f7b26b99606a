package models

import (
	"time"

	"github.com/google/uuid"
)

// Prompt represents the current editable state of a named prompt document.
// Content always mirrors the content of the active PromptVersion once at
// least one commit exists.
type Prompt struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Slug      string    `db:"slug" json:"slug"`
	Name      string    `db:"name" json:"name"`
	Content   *string   `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Versions is populated only by the admin detail queries,
	// sorted by version number descending.
	Versions []*PromptVersion `db:"-" json:"versions,omitempty"`
}

// PromptVersion is an immutable historical snapshot of a prompt.
// Only IsActive ever changes after insertion.
type PromptVersion struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PromptID      uuid.UUID  `db:"prompt_id" json:"promptId"`
	VersionNumber int        `db:"version_number" json:"versionNumber"`
	Content       string     `db:"content" json:"content"`
	CommitMessage string     `db:"commit_message" json:"commitMessage"`
	IsActive      bool       `db:"is_active" json:"isActive"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	CreatedByID   *uuid.UUID `db:"created_by_id" json:"createdById,omitempty"`
}

// CommitRequest is the validated command object for a prompt commit.
// It is constructed once at the HTTP boundary and passed into the engine.
type CommitRequest struct {
	Slug          string
	Name          string
	Content       string
	CommitMessage string
	PromptID      *uuid.UUID
	AuthorID      *uuid.UUID
}
