package dex

// BaseStats are the species base values used to derive battle stats.
type BaseStats struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	SpAtk   int `json:"spatk"`
	SpDef   int `json:"spdef"`
	Speed   int `json:"speed"`
}

// Species is one row of the pokemon table. Alternate forms (Castform-rainy,
// Marowak-alola) are rows of their own, keyed by Name.
type Species struct {
	ID         int       `json:"id"`
	Identifier string    `json:"identifier"`
	Name       string    `json:"name"`
	Types      []string  `json:"types"`
	Base       BaseStats `json:"base_stats"`
	CanEvolve  bool      `json:"can_evolve"`
	Abilities  []string  `json:"abilities"`
}

// Move is one row of the moves table.
type Move struct {
	ID           int      `json:"id"`
	Identifier   string   `json:"identifier"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Power        int      `json:"power"`
	Accuracy     int      `json:"accuracy"`
	PP           int      `json:"pp"`
	Priority     int      `json:"priority"`
	DamageClass  int      `json:"damage_class_id"`
	EffectChance int      `json:"effect_chance"`
	Ailment      string   `json:"ailment"`
	Effect       string   `json:"effect"`
	Flags        []string `json:"flags"`

	// Field effects installed by the move, by identifier.
	Weather string `json:"weather,omitempty"`
	Terrain string `json:"terrain,omitempty"`

	// StatChanges apply to the user when StatTarget is "self", otherwise to
	// the target. Damaging moves apply them with EffectChance.
	StatChanges []StatChange `json:"stat_changes,omitempty"`
	StatTarget  string       `json:"stat_target,omitempty"`
}

// StatChange is a stage delta for one stat.
type StatChange struct {
	Stat   string `json:"stat"`
	Change int    `json:"change"`
}

// HasFlag reports whether the move carries the named flag ("contact", "sound",
// "bypass-substitute", ...).
func (m *Move) HasFlag(flag string) bool {
	for _, f := range m.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Item is one row of the items table.
type Item struct {
	ID            int    `json:"id"`
	Identifier    string `json:"identifier"`
	FlingPower    int    `json:"fling_power"`
	FlingEffectID int    `json:"fling_effect_id"`
}

// Ability is one row of the abilities table.
type Ability struct {
	ID         int    `json:"id"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}
