// Package userconfig stores per-member parties and per-guild settings.
// Reads are filled from registered defaults for anything never set.
package userconfig

import (
	"context"

	"github.com/KirkDiggler/pokeduel/internal/errors"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=userconfigmock github.com/KirkDiggler/pokeduel/internal/repositories/userconfig Repository

// MaxPartySize is the largest party a member may register.
const MaxPartySize = 6

// PartyMember describes one creature of a saved party.
type PartyMember struct {
	Species        string   `json:"species" yaml:"species"`
	Nickname       string   `json:"nickname,omitempty" yaml:"nickname,omitempty"`
	Level          int      `json:"level,omitempty" yaml:"level,omitempty"`
	Ability        string   `json:"ability,omitempty" yaml:"ability,omitempty"`
	Item           string   `json:"item,omitempty" yaml:"item,omitempty"`
	Moves          []string `json:"moves" yaml:"moves"`
	DislikedFlavor string   `json:"disliked_flavor,omitempty" yaml:"disliked_flavor,omitempty"`
}

// MemberConfig is everything stored for one member.
type MemberConfig struct {
	MemberID string
	Party    []PartyMember
}

// GuildConfig is everything stored for one guild.
type GuildConfig struct {
	GuildID    string
	UseThreads bool
}

// Defaults are returned for values a member or guild never set.
type Defaults struct {
	Party      []PartyMember
	UseThreads bool
}

func (d Defaults) party() []PartyMember {
	return clonePartyMembers(d.Party)
}

// GetMemberInput contains parameters for reading a member
type GetMemberInput struct {
	MemberID string
}

// GetMemberOutput contains the member, default-filled
type GetMemberOutput struct {
	Member *MemberConfig
}

// SetPartyInput contains parameters for saving a member's party
type SetPartyInput struct {
	MemberID string
	Party    []PartyMember
}

// SetPartyOutput contains the saved member
type SetPartyOutput struct {
	Member *MemberConfig
}

// GetGuildInput contains parameters for reading a guild
type GetGuildInput struct {
	GuildID string
}

// GetGuildOutput contains the guild, default-filled
type GetGuildOutput struct {
	Guild *GuildConfig
}

// SetUseThreadsInput contains parameters for changing a guild's thread setting
type SetUseThreadsInput struct {
	GuildID    string
	UseThreads bool
}

// SetUseThreadsOutput contains the saved guild
type SetUseThreadsOutput struct {
	Guild *GuildConfig
}

// Repository defines the storage interface for member and guild settings
type Repository interface {
	// GetMember returns a member's settings, defaults applied
	GetMember(ctx context.Context, input *GetMemberInput) (*GetMemberOutput, error)

	// SetParty replaces a member's party
	SetParty(ctx context.Context, input *SetPartyInput) (*SetPartyOutput, error)

	// GetGuild returns a guild's settings, defaults applied
	GetGuild(ctx context.Context, input *GetGuildInput) (*GetGuildOutput, error)

	// SetUseThreads changes whether duels in a guild run in threads
	SetUseThreads(ctx context.Context, input *SetUseThreadsInput) (*SetUseThreadsOutput, error)
}

// Validate checks a party before it is stored.
func (in *SetPartyInput) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("MemberID", in.MemberID, vb)
	if len(in.Party) > MaxPartySize {
		vb.Fieldf("Party", "has %d members, at most %d allowed", len(in.Party), MaxPartySize)
	}
	for i, m := range in.Party {
		if m.Species == "" {
			vb.Fieldf("Party", "member %d has no species", i)
		}
		if len(m.Moves) == 0 || len(m.Moves) > 4 {
			vb.Fieldf("Party", "member %d has %d moves, want 1 to 4", i, len(m.Moves))
		}
		if m.Level < 0 || m.Level > 100 {
			vb.Fieldf("Party", "member %d has level %d", i, m.Level)
		}
	}
	return vb.Build()
}

func clonePartyMembers(party []PartyMember) []PartyMember {
	if party == nil {
		return []PartyMember{}
	}
	out := make([]PartyMember, len(party))
	for i, m := range party {
		m.Moves = append([]string(nil), m.Moves...)
		out[i] = m
	}
	return out
}
