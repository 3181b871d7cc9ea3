package battle

import (
	"github.com/KirkDiggler/pokeduel/internal/dex"
	"github.com/KirkDiggler/pokeduel/internal/errors"
)

// Move is a known move with its remaining PP.
type Move struct {
	data *dex.Move

	Type  ElementType
	PP    int
	MaxPP int
}

// NewMove wraps a reference move with full PP.
func NewMove(data *dex.Move) (*Move, error) {
	if data == nil {
		return nil, errors.InvalidArgument("move data is required")
	}
	t, err := ParseElement(data.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "move %s", data.Identifier)
	}
	return &Move{data: data, Type: t, PP: data.PP, MaxPP: data.PP}, nil
}

// Data returns the static reference record.
func (m *Move) Data() *dex.Move { return m.data }

// Identifier is the move's reference id, e.g. "thunder-wave".
func (m *Move) Identifier() string { return m.data.Identifier }

// Name is the display name, e.g. "Thunder Wave".
func (m *Move) Name() string { return m.data.Name }

func (m *Move) Power() int    { return m.data.Power }
func (m *Move) Accuracy() int { return m.data.Accuracy }
func (m *Move) Priority() int { return m.data.Priority }

// Class is the move's damage class.
func (m *Move) Class() DamageClass { return DamageClass(m.data.DamageClass) }

// IsDamaging reports whether the move deals direct damage.
func (m *Move) IsDamaging() bool {
	return m.Class() != DamageClassStatus && m.data.Power > 0
}

// IsSound reports whether the move is sound based.
func (m *Move) IsSound() bool {
	return m.data.HasFlag("sound")
}

// AffectedBySubstitute reports whether a substitute blocks the move.
func (m *Move) AffectedBySubstitute() bool {
	return !m.IsSound() && !m.data.HasFlag("bypass-substitute")
}

// MakesContact reports whether the move touches its target when used by
// attacker.
func (m *Move) MakesContact(attacker *Pokemon) bool {
	if !m.data.HasFlag("contact") {
		return false
	}
	return attacker == nil || attacker.Ability() != AbilityLongReach
}
