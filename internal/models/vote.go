package models

import "time"

// UserVote is the single current choice a user has recorded for a category.
// Keyed by (user, category) in the store, so at most one exists per pair.
type UserVote struct {
	UserID     string    `json:"user_id" mapstructure:"user_id"`
	CategoryID string    `json:"category_id" mapstructure:"category_id"`
	NomineeID  string    `json:"nominee_id" mapstructure:"nominee_id"`
	OtherText  string    `json:"other_text,omitempty" mapstructure:"other_text"`
	VotedAt    time.Time `json:"voted_at" mapstructure:"-"`
}

// VoteReceipt is returned after a successful submission. It carries the
// authoritative outcome so a client can reconcile any optimistic state it
// rendered before the write committed.
type VoteReceipt struct {
	CategoryID        string    `json:"category_id"`
	NomineeID         string    `json:"nominee_id"`
	PreviousNomineeID string    `json:"previous_nominee_id,omitempty"`
	FirstVote         bool      `json:"first_vote"`
	VotedAt           time.Time `json:"voted_at"`
}

// WriteInChoice is one logged free-text suggestion submitted through the
// "Other" nominee. The log is append-only and never feeds the numeric tally.
type WriteInChoice struct {
	CategoryID  string    `json:"category_id"`
	NomineeID   string    `json:"nominee_id"`
	UserID      string    `json:"user_id"`
	Text        string    `json:"text"`
	SubmittedAt time.Time `json:"submitted_at"`

	// DisplayName is resolved best-effort by the write-in viewer and is not
	// persisted with the record.
	DisplayName string `json:"display_name,omitempty"`
}
