package duels

import (
	"context"
	"sync"

	"github.com/KirkDiggler/pokeduel/internal/errors"
	"github.com/KirkDiggler/pokeduel/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]*Record
}

// NewInMemory creates a new in-memory repository. A nil clock uses the
// system time.
func NewInMemory(clk clock.Clock) *InMemoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &InMemoryRepository{
		clock: clk,
		store: make(map[string]*Record),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Create stores a new duel
func (r *InMemoryRepository) Create(_ context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateRecord(input.Record); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Record.ID]; exists {
		return nil, errors.AlreadyExistsf("duel %s already exists", input.Record.ID)
	}

	rec := newRecord(input.Record, r.clock.Now())
	if rec.Active() {
		for _, member := range rec.MemberIDs {
			if r.activeFor(member) != nil {
				return nil, errMemberBusy(member)
			}
		}
	}
	r.store[rec.ID] = rec

	return &CreateOutput{Record: rec.clone()}, nil
}

// Get retrieves a duel by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.DuelID == "" {
		return nil, errors.InvalidArgument(errDuelIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.store[input.DuelID]
	if !exists {
		return nil, errors.NotFound(errDuelNotFound)
	}

	// Return a copy to prevent external modification
	return &GetOutput{Record: rec.clone()}, nil
}

// Update records the turn reached and the outcome
func (r *InMemoryRepository) Update(_ context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil || input.DuelID == "" {
		return nil, errors.InvalidArgument(errDuelIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.store[input.DuelID]
	if !exists {
		return nil, errors.NotFound(errDuelNotFound)
	}

	applyUpdate(rec, input)
	rec.UpdatedAt = r.clock.Now()

	return &UpdateOutput{Record: rec.clone()}, nil
}

// FindActive returns the running duel a member takes part in
func (r *InMemoryRepository) FindActive(_ context.Context, input *FindActiveInput) (*FindActiveOutput, error) {
	if input == nil || input.MemberID == "" {
		return nil, errors.InvalidArgument(errMemberIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if rec := r.activeFor(input.MemberID); rec != nil {
		return &FindActiveOutput{Record: rec.clone()}, nil
	}
	return nil, errors.NotFoundf("member %s has no active duel", input.MemberID)
}

// activeFor must be called with r.mu held.
func (r *InMemoryRepository) activeFor(memberID string) *Record {
	for _, rec := range r.store {
		if rec.Active() && (rec.MemberIDs[0] == memberID || rec.MemberIDs[1] == memberID) {
			return rec
		}
	}
	return nil
}

// Delete removes a duel
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.DuelID == "" {
		return nil, errors.InvalidArgument(errDuelIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.DuelID]; !exists {
		return nil, errors.NotFound(errDuelNotFound)
	}
	delete(r.store, input.DuelID)

	return &DeleteOutput{Success: true}, nil
}

func applyUpdate(rec *Record, input *UpdateInput) {
	if input.Turn > rec.Turn {
		rec.Turn = input.Turn
	}
	if input.Status != "" {
		rec.Status = input.Status
	}
	if input.WinnerID != "" {
		rec.WinnerID = input.WinnerID
	}
}
