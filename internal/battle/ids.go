package battle

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ability identifiers the engine reacts to.
const (
	AbilityAirLock         = "air-lock"
	AbilityAsOneIce        = "as-one-ice"
	AbilityAsOneShadow     = "as-one-shadow"
	AbilityAdaptability    = "adaptability"
	AbilityBattleArmor     = "battle-armor"
	AbilityCheekPouch      = "cheek-pouch"
	AbilityChlorophyll     = "chlorophyll"
	AbilityClearBody       = "clear-body"
	AbilityCloudNine       = "cloud-nine"
	AbilityComatose        = "comatose"
	AbilityContrary        = "contrary"
	AbilityCorrosion       = "corrosion"
	AbilityCudChew         = "cud-chew"
	AbilityCuriousMedicine = "curious-medicine"
	AbilityDeltaStream     = "delta-stream"
	AbilityDesolateLand    = "desolate-land"
	AbilityDrizzle         = "drizzle"
	AbilityDrought         = "drought"
	AbilityEarlyBird       = "early-bird"
	AbilityElectricSurge   = "electric-surge"
	AbilityFlowerVeil      = "flower-veil"
	AbilityForecast        = "forecast"
	AbilityFullMetalBody   = "full-metal-body"
	AbilityGluttony        = "gluttony"
	AbilityGrassySurge     = "grassy-surge"
	AbilityGuts            = "guts"
	AbilityHeatproof       = "heatproof"
	AbilityHydration       = "hydration"
	AbilityIceBody         = "ice-body"
	AbilityImmunity        = "immunity"
	AbilityInfiltrator     = "infiltrator"
	AbilityInsomnia        = "insomnia"
	AbilityKlutz           = "klutz"
	AbilityLeafGuard       = "leaf-guard"
	AbilityLevitate        = "levitate"
	AbilityLimber          = "limber"
	AbilityLongReach       = "long-reach"
	AbilityMagicGuard      = "magic-guard"
	AbilityMagmaArmor      = "magma-armor"
	AbilityMimicry         = "mimicry"
	AbilityMistySurge      = "misty-surge"
	AbilityMoldBreaker     = "mold-breaker"
	AbilityOvercoat        = "overcoat"
	AbilityOwnTempo        = "own-tempo"
	AbilityPastelVeil      = "pastel-veil"
	AbilityPoisonHeal      = "poison-heal"
	AbilityPoisonPuppeteer = "poison-puppeteer"
	AbilityPressure        = "pressure"
	AbilityPrimordialSea   = "primordial-sea"
	AbilityProtosynthesis  = "protosynthesis"
	AbilityPsychicSurge    = "psychic-surge"
	AbilityPurifyingSalt   = "purifying-salt"
	AbilityQuarkDrive      = "quark-drive"
	AbilityQuickFeet       = "quick-feet"
	AbilityRainDish        = "rain-dish"
	AbilityRipen           = "ripen"
	AbilitySandForce       = "sand-force"
	AbilitySandRush        = "sand-rush"
	AbilitySandStream      = "sand-stream"
	AbilitySandVeil        = "sand-veil"
	AbilityShellArmor      = "shell-armor"
	AbilityShedSkin        = "shed-skin"
	AbilitySimple          = "simple"
	AbilitySlushRush       = "slush-rush"
	AbilitySnowCloak       = "snow-cloak"
	AbilitySnowWarning     = "snow-warning"
	AbilitySoundproof      = "soundproof"
	AbilitySweetVeil       = "sweet-veil"
	AbilitySwiftSwim       = "swift-swim"
	AbilitySynchronize     = "synchronize"
	AbilityTeravolt        = "teravolt"
	AbilityTurboblaze      = "turboblaze"
	AbilityUnnerve         = "unnerve"
	AbilityVitalSpirit     = "vital-spirit"
	AbilityWaterBubble     = "water-bubble"
	AbilityWaterVeil       = "water-veil"
	AbilityWhiteSmoke      = "white-smoke"
)

// prettyName turns an identifier like "water-veil" into "Water Veil".
// Casers are stateful, so one is built per call.
func prettyName(identifier string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(identifier, "-", " "))
}

// spacedName turns an identifier like "purifying-salt" into
// "purifying salt".
func spacedName(identifier string) string {
	return strings.ReplaceAll(identifier, "-", " ")
}

// from renders an optional narration source.
func from(source string) string {
	if source == "" {
		return ""
	}
	return " from " + source
}
