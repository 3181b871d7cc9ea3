package battle

import "fmt"

// typeBoostItems raise the damage of one move type by 20%.
var typeBoostItems = map[string]ElementType{
	"silk-scarf": ElementNormal, "normalium-z": ElementNormal,
	"charcoal": ElementFire, "firium-z": ElementFire,
	"mystic-water": ElementWater, "waterium-z": ElementWater,
	"magnet": ElementElectric, "electrium-z": ElementElectric,
	"miracle-seed": ElementGrass, "grassium-z": ElementGrass,
	"never-melt-ice": ElementIce, "icium-z": ElementIce,
	"black-belt": ElementFighting, "fightinium-z": ElementFighting,
	"poison-barb": ElementPoison, "poisonium-z": ElementPoison,
	"soft-sand": ElementGround, "groundium-z": ElementGround,
	"sharp-beak": ElementFlying, "flyinium-z": ElementFlying,
	"twisted-spoon": ElementPsychic, "psychium-z": ElementPsychic,
	"silver-powder": ElementBug, "buginium-z": ElementBug,
	"hard-stone": ElementRock, "rockium-z": ElementRock,
	"spell-tag": ElementGhost, "ghostium-z": ElementGhost,
	"dragon-fang": ElementDragon, "dragonium-z": ElementDragon,
	"black-glasses": ElementDark, "darkinium-z": ElementDark,
	"metal-coat": ElementSteel, "steelium-z": ElementSteel,
	"fairy-feather": ElementFairy, "fairium-z": ElementFairy,
}

// resistBerries halve one super effective hit of their type.
var resistBerries = map[ElementType]string{
	ElementNormal:   "chilan-berry",
	ElementFire:     "occa-berry",
	ElementWater:    "passho-berry",
	ElementElectric: "wacan-berry",
	ElementGrass:    "rindo-berry",
	ElementIce:      "yache-berry",
	ElementFighting: "chople-berry",
	ElementPoison:   "kebia-berry",
	ElementGround:   "shuca-berry",
	ElementFlying:   "coba-berry",
	ElementPsychic:  "payapa-berry",
	ElementBug:      "tanga-berry",
	ElementRock:     "charti-berry",
	ElementGhost:    "kasib-berry",
	ElementDragon:   "haban-berry",
	ElementDark:     "colbur-berry",
	ElementSteel:    "babiri-berry",
	ElementFairy:    "roseli-berry",
}

// DamageMultiplier is the attacker side item bonus for move.
func (h *HeldItem) DamageMultiplier(b *Battle, move *Move, superEffective bool) float64 {
	item := h.Get(b)
	if item == "" || move == nil {
		return 1
	}

	multiplier := 1.0
	if t, ok := typeBoostItems[item]; ok && t == move.Type {
		multiplier *= 1.2
	}
	switch item {
	case "life-orb":
		multiplier *= 1.3
	case "expert-belt":
		if superEffective {
			multiplier *= 1.2
		}
	case "choice-band":
		if move.Class() == DamageClassPhysical {
			multiplier *= 1.5
		}
	case "choice-specs":
		if move.Class() == DamageClassSpecial {
			multiplier *= 1.5
		}
	case "metronome":
		multiplier *= h.owner.Metronome.Buff(move.Identifier())
	}
	return multiplier
}

// DefensiveMultiplier halves a super effective hit when the matching resist
// berry is held, consuming the berry.
func (h *HeldItem) DefensiveMultiplier(b *Battle, moveType ElementType, superEffective bool) (float64, string) {
	berry, ok := resistBerries[moveType]
	if !ok || !superEffective || !h.Is(b, berry) {
		return 1, ""
	}
	h.consume(b)
	return 0.5, fmt.Sprintf("%s's %s weakened the attack!\n", h.owner.Name(), prettyName(berry))
}

// SpeedMultiplier is the held item speed modifier.
func (h *HeldItem) SpeedMultiplier(b *Battle) float64 {
	switch h.Get(b) {
	case "choice-scarf":
		return 1.5
	case "quick-powder":
		if h.owner.SpeciesName() == "Ditto" {
			return 2
		}
	case "iron-ball", "power-anklet", "macho-brace":
		return 0.5
	}
	return 1
}

// StatMultiplier is the held item modifier for stat.
func (h *HeldItem) StatMultiplier(b *Battle, stat Stat) float64 {
	species := h.owner.FormName()
	switch h.Get(b) {
	case "eviolite":
		if h.owner.CanStillEvolve && (stat == StatDefense || stat == StatSpDef) {
			return 1.5
		}
	case "assault-vest":
		if stat == StatSpDef {
			return 1.5
		}
	case "deep-sea-scale":
		if species == "Clamperl" && stat == StatSpDef {
			return 2
		}
	case "deep-sea-tooth":
		if species == "Clamperl" && stat == StatSpAtk {
			return 2
		}
	case "light-ball":
		if species == "Pikachu" && (stat == StatAttack || stat == StatSpAtk) {
			return 2
		}
	case "thick-club":
		if (species == "Cubone" || species == "Marowak" || species == "Marowak-alola") && stat == StatAttack {
			return 2
		}
	case "metal-powder":
		if species == "Ditto" && stat == StatDefense {
			return 2
		}
	}
	return 1
}

// MovesLast reports whether the item puts the holder at the back of its
// priority bracket.
func (h *HeldItem) MovesLast(b *Battle) bool {
	item := h.Get(b)
	return item == "lagging-tail" || item == "full-incense"
}
