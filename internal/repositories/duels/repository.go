// Package duels stores duel metadata: who is fighting where, the turn
// reached and the outcome. Live battle state stays in memory.
package duels

import (
	"context"
	"time"

	"github.com/KirkDiggler/pokeduel/internal/errors"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=duelsmock github.com/KirkDiggler/pokeduel/internal/repositories/duels Repository

// Status is the lifecycle state of a duel.
type Status string

// Duel statuses
const (
	StatusActive    Status = "active"
	StatusFinished  Status = "finished"
	StatusForfeited Status = "forfeited"
)

// Record is the persisted summary of one duel.
type Record struct {
	ID        string    `json:"id"`
	GuildID   string    `json:"guild_id,omitempty"`
	ChannelID string    `json:"channel_id,omitempty"`
	MemberIDs [2]string `json:"member_ids"`
	Status    Status    `json:"status"`
	Turn      int       `json:"turn"`
	WinnerID  string    `json:"winner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether the duel is still running.
func (r *Record) Active() bool {
	return r.Status == StatusActive
}

func (r *Record) clone() *Record {
	c := *r
	return &c
}

// newRecord copies r for storage, defaulting the status to active.
func newRecord(r *Record, now time.Time) *Record {
	rec := r.clone()
	if rec.Status == "" {
		rec.Status = StatusActive
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return rec
}

// CreateInput defines the request for storing a new duel
type CreateInput struct {
	Record *Record
}

// CreateOutput defines the response for storing a new duel
type CreateOutput struct {
	Record *Record
}

// GetInput defines the request for retrieving a duel
type GetInput struct {
	DuelID string
}

// GetOutput defines the response for retrieving a duel
type GetOutput struct {
	Record *Record
}

// UpdateInput defines the request for recording progress
type UpdateInput struct {
	DuelID   string
	Turn     int
	Status   Status
	WinnerID string
}

// UpdateOutput defines the response for recording progress
type UpdateOutput struct {
	Record *Record
}

// FindActiveInput defines the request for a member's running duel
type FindActiveInput struct {
	MemberID string
}

// FindActiveOutput defines the response for a member's running duel
type FindActiveOutput struct {
	Record *Record
}

// DeleteInput defines the request for deleting a duel
type DeleteInput struct {
	DuelID string
}

// DeleteOutput defines the response for deleting a duel
type DeleteOutput struct {
	Success bool
}

// Repository defines the storage interface for duels
type Repository interface {
	// Create stores a new duel; AlreadyExists if the ID is taken and
	// FailedPrecondition, with the member ID under MetaMemberID, if either
	// member already takes part in an active duel
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)

	// Get retrieves a duel by ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Update records the turn reached and, when it ends, the outcome
	Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error)

	// FindActive returns the running duel a member takes part in
	FindActive(ctx context.Context, input *FindActiveInput) (*FindActiveOutput, error)

	// Delete removes a duel
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// MetaMemberID is the error metadata key naming the member whose claim
// failed in Create.
const MetaMemberID = "member_id"

func errMemberBusy(memberID string) error {
	return errors.FailedPreconditionf("member %s is already in a duel", memberID).
		WithMeta(MetaMemberID, memberID)
}

const (
	errDuelIDEmpty   = "duel ID is required"
	errMemberIDEmpty = "member ID is required"
	errDuelNotFound  = "duel not found"
)

func validateRecord(r *Record) error {
	if r == nil {
		return errors.InvalidArgument("record is required")
	}
	if r.ID == "" {
		return errors.InvalidArgument(errDuelIDEmpty)
	}
	if r.MemberIDs[0] == "" || r.MemberIDs[1] == "" {
		return errors.InvalidArgument("both member IDs are required")
	}
	return nil
}
