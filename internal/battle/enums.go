package battle

import (
	"github.com/KirkDiggler/pokeduel/internal/errors"
)

// ElementType is a creature or move type.
type ElementType int

// Element types
const (
	ElementNone ElementType = iota
	ElementNormal
	ElementFighting
	ElementFlying
	ElementPoison
	ElementGround
	ElementRock
	ElementBug
	ElementGhost
	ElementSteel
	ElementFire
	ElementWater
	ElementGrass
	ElementElectric
	ElementPsychic
	ElementIce
	ElementDragon
	ElementDark
	ElementFairy
)

var elementNames = map[ElementType]string{
	ElementNormal:   "normal",
	ElementFighting: "fighting",
	ElementFlying:   "flying",
	ElementPoison:   "poison",
	ElementGround:   "ground",
	ElementRock:     "rock",
	ElementBug:      "bug",
	ElementGhost:    "ghost",
	ElementSteel:    "steel",
	ElementFire:     "fire",
	ElementWater:    "water",
	ElementGrass:    "grass",
	ElementElectric: "electric",
	ElementPsychic:  "psychic",
	ElementIce:      "ice",
	ElementDragon:   "dragon",
	ElementDark:     "dark",
	ElementFairy:    "fairy",
}

func (e ElementType) String() string {
	if name, ok := elementNames[e]; ok {
		return name
	}
	return "none"
}

// ParseElement converts a type identifier into an ElementType.
func ParseElement(s string) (ElementType, error) {
	for e, name := range elementNames {
		if name == s {
			return e, nil
		}
	}
	return ElementNone, errors.InvalidArgumentf("unknown element type %q", s)
}

// Status is a non-volatile status condition.
type Status int

// Statuses
const (
	StatusNone Status = iota
	StatusBurn
	StatusSleep
	StatusPoison
	StatusBadPoison
	StatusParalysis
	StatusFreeze
)

func (s Status) String() string {
	switch s {
	case StatusBurn:
		return "burn"
	case StatusSleep:
		return "sleep"
	case StatusPoison:
		return "poison"
	case StatusBadPoison:
		return "b-poison"
	case StatusParalysis:
		return "paralysis"
	case StatusFreeze:
		return "freeze"
	default:
		return ""
	}
}

// ParseStatus converts a status identifier into a Status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "":
		return StatusNone, nil
	case "burn":
		return StatusBurn, nil
	case "sleep":
		return StatusSleep, nil
	case "poison":
		return StatusPoison, nil
	case "b-poison":
		return StatusBadPoison, nil
	case "paralysis":
		return StatusParalysis, nil
	case "freeze":
		return StatusFreeze, nil
	}
	return StatusNone, errors.InvalidArgumentf("unknown status %q", s)
}

// WeatherKind is the weather on the field.
type WeatherKind int

// Weather kinds. The heavy kinds are only replaced by other heavy kinds.
const (
	WeatherNone WeatherKind = iota
	WeatherHail
	WeatherSandstorm
	WeatherRain
	WeatherSun
	WeatherHeavyRain
	WeatherHeavySun
	WeatherHeavyWind
)

func (w WeatherKind) String() string {
	switch w {
	case WeatherHail:
		return "hail"
	case WeatherSandstorm:
		return "sandstorm"
	case WeatherRain:
		return "rain"
	case WeatherSun:
		return "sun"
	case WeatherHeavyRain:
		return "h-rain"
	case WeatherHeavySun:
		return "h-sun"
	case WeatherHeavyWind:
		return "h-wind"
	default:
		return ""
	}
}

// IsHeavy reports whether w is a primal weather.
func (w WeatherKind) IsHeavy() bool {
	return w == WeatherHeavyRain || w == WeatherHeavySun || w == WeatherHeavyWind
}

// IsRain is true for rain and heavy rain.
func (w WeatherKind) IsRain() bool {
	return w == WeatherRain || w == WeatherHeavyRain
}

// IsSun is true for sun and harsh sun.
func (w WeatherKind) IsSun() bool {
	return w == WeatherSun || w == WeatherHeavySun
}

// ParseWeather converts a weather identifier into a WeatherKind.
func ParseWeather(s string) (WeatherKind, error) {
	switch s {
	case "":
		return WeatherNone, nil
	case "hail":
		return WeatherHail, nil
	case "sandstorm":
		return WeatherSandstorm, nil
	case "rain":
		return WeatherRain, nil
	case "sun":
		return WeatherSun, nil
	case "h-rain":
		return WeatherHeavyRain, nil
	case "h-sun":
		return WeatherHeavySun, nil
	case "h-wind":
		return WeatherHeavyWind, nil
	}
	return WeatherNone, errors.InvalidArgumentf("unexpected weather %q", s)
}

// TerrainKind is the terrain on the field.
type TerrainKind int

// Terrain kinds
const (
	TerrainNone TerrainKind = iota
	TerrainElectric
	TerrainGrassy
	TerrainMisty
	TerrainPsychic
)

func (t TerrainKind) String() string {
	switch t {
	case TerrainElectric:
		return "electric"
	case TerrainGrassy:
		return "grassy"
	case TerrainMisty:
		return "misty"
	case TerrainPsychic:
		return "psychic"
	default:
		return ""
	}
}

// ParseTerrain converts a terrain identifier into a TerrainKind.
func ParseTerrain(s string) (TerrainKind, error) {
	switch s {
	case "":
		return TerrainNone, nil
	case "electric":
		return TerrainElectric, nil
	case "grassy":
		return TerrainGrassy, nil
	case "misty":
		return TerrainMisty, nil
	case "psychic":
		return TerrainPsychic, nil
	}
	return TerrainNone, errors.InvalidArgumentf("unexpected terrain %q", s)
}

// Stat indexes a stat stage.
type Stat int

// Stats with stages
const (
	StatAttack Stat = iota
	StatDefense
	StatSpAtk
	StatSpDef
	StatSpeed
	StatAccuracy
	StatEvasion
	numStats
)

func (s Stat) String() string {
	switch s {
	case StatAttack:
		return "attack"
	case StatDefense:
		return "defense"
	case StatSpAtk:
		return "spatk"
	case StatSpDef:
		return "spdef"
	case StatSpeed:
		return "speed"
	case StatAccuracy:
		return "accuracy"
	case StatEvasion:
		return "evasion"
	default:
		return ""
	}
}

// Pretty is the stat name used in narration.
func (s Stat) Pretty() string {
	switch s {
	case StatSpAtk:
		return "special attack"
	case StatSpDef:
		return "special defense"
	default:
		return s.String()
	}
}

// ParseStat converts a stat identifier into a Stat.
func ParseStat(s string) (Stat, error) {
	for st := StatAttack; st < numStats; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, errors.InvalidArgumentf("unknown stat %q", s)
}

// DamageClass of a move, matching the reference data ids.
type DamageClass int

// Damage classes
const (
	DamageClassStatus   DamageClass = 1
	DamageClassPhysical DamageClass = 2
	DamageClassSpecial  DamageClass = 3
)
