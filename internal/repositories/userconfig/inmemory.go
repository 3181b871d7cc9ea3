package userconfig

import (
	"context"
	"sync"

	"github.com/KirkDiggler/pokeduel/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu       sync.RWMutex
	defaults Defaults
	parties  map[string][]PartyMember
	threads  map[string]bool
}

// NewInMemory creates a new in-memory repository
func NewInMemory(defaults Defaults) *InMemoryRepository {
	return &InMemoryRepository{
		defaults: defaults,
		parties:  make(map[string][]PartyMember),
		threads:  make(map[string]bool),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// GetMember returns a member's settings, defaults applied
func (r *InMemoryRepository) GetMember(_ context.Context, input *GetMemberInput) (*GetMemberOutput, error) {
	if input == nil || input.MemberID == "" {
		return nil, errors.InvalidArgument(errMemberIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	member := &MemberConfig{MemberID: input.MemberID, Party: r.defaults.party()}
	if party, ok := r.parties[input.MemberID]; ok {
		// Return a copy to prevent external modification
		member.Party = clonePartyMembers(party)
	}
	return &GetMemberOutput{Member: member}, nil
}

// SetParty replaces a member's party
func (r *InMemoryRepository) SetParty(_ context.Context, input *SetPartyInput) (*SetPartyOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.parties[input.MemberID] = clonePartyMembers(input.Party)
	return &SetPartyOutput{Member: &MemberConfig{
		MemberID: input.MemberID,
		Party:    clonePartyMembers(input.Party),
	}}, nil
}

// GetGuild returns a guild's settings, defaults applied
func (r *InMemoryRepository) GetGuild(_ context.Context, input *GetGuildInput) (*GetGuildOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	guild := &GuildConfig{GuildID: input.GuildID, UseThreads: r.defaults.UseThreads}
	if v, ok := r.threads[input.GuildID]; ok {
		guild.UseThreads = v
	}
	return &GetGuildOutput{Guild: guild}, nil
}

// SetUseThreads changes whether duels in a guild run in threads
func (r *InMemoryRepository) SetUseThreads(_ context.Context, input *SetUseThreadsInput) (*SetUseThreadsOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.threads[input.GuildID] = input.UseThreads
	return &SetUseThreadsOutput{Guild: &GuildConfig{GuildID: input.GuildID, UseThreads: input.UseThreads}}, nil
}
