package testutils

import (
	"github.com/KirkDiggler/pokeduel/internal/repositories/userconfig"
)

// Member and guild IDs used across tests
const (
	TestMemberAsh   = "member-ash"
	TestMemberGary  = "member-gary"
	TestMemberMisty = "member-misty"
	TestGuildID     = "guild-test-001"
	TestChannelID   = "channel-test-001"
)

// CreateTestParty returns a small party that resolves against the bundled
// reference data. Every call returns fresh slices.
func CreateTestParty() []userconfig.PartyMember {
	return []userconfig.PartyMember{
		{
			Species:  "snorlax",
			Nickname: "Lax",
			Item:     "leftovers",
			Moves:    []string{"tackle", "rest", "body-slam"},
		},
		{
			Species: "chansey",
			Moves:   []string{"tackle", "wish", "toxic"},
		},
	}
}

// CreateTestPartyOf returns a one-member party of species knowing moves.
func CreateTestPartyOf(species string, moves ...string) []userconfig.PartyMember {
	if len(moves) == 0 {
		moves = []string{"tackle"}
	}
	return []userconfig.PartyMember{{Species: species, Moves: moves}}
}
