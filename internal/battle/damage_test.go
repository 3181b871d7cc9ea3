package battle

import (
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func damageBattle(t *testing.T, roller dice.Roller, attacker, defender *PokemonConfig) (*Battle, *Pokemon, *Pokemon) {
	t.Helper()
	b := newTestBattle(t, roller, []*PokemonConfig{attacker}, []*PokemonConfig{defender})
	return b, b.Trainer1.Current(), b.Trainer2.Current()
}

func TestCalculateDamage_Formula(t *testing.T) {
	b, snorlax, chansey := damageBattle(t, nil,
		mon("snorlax", withMoves("tackle")), mon("chansey"))

	res := b.calculateDamage(snorlax, chansey, snorlax.Moves[0])
	assert.False(t, res.critical)
	assert.Equal(t, 1.0, res.effectiveness)
	assert.Equal(t, 283, res.damage)

	snorlax.NV.ApplyStatus(b, StatusBurn, StatusOptions{})
	assert.Equal(t, 141, b.calculateDamage(snorlax, chansey, snorlax.Moves[0]).damage)

	snorlax.AbilityID = AbilityGuts
	assert.Equal(t, 283, b.calculateDamage(snorlax, chansey, snorlax.Moves[0]).damage)
}

func TestCalculateDamage_Immunities(t *testing.T) {
	b, snorlax, gengar := damageBattle(t, nil,
		mon("snorlax", withMoves("tackle", "earthquake")), mon("gengar"))

	res := b.calculateDamage(snorlax, gengar, snorlax.Moves[0])
	assert.Equal(t, 0.0, res.effectiveness)
	assert.Equal(t, 0, res.damage)
	assert.Equal(t, "It doesn't affect Gengar...\n", effectivenessMessage(res.effectiveness, gengar))

	assert.Equal(t, 2.0, b.calculateDamage(snorlax, gengar, snorlax.Moves[1]).effectiveness)
	gengar.MagnetRise.SetTurns(fieldTurns)
	assert.Equal(t, 0.0, b.calculateDamage(snorlax, gengar, snorlax.Moves[1]).effectiveness)
}

func TestCalculateDamage_HeavyWeatherFizzles(t *testing.T) {
	b, charizard, snorlax := damageBattle(t, nil,
		mon("charizard", withMoves("ember", "water-gun")), mon("snorlax"))

	b.Weather.Set(b, WeatherHeavyRain, nil)
	res := b.calculateDamage(charizard, snorlax, charizard.Moves[0])
	assert.Equal(t, 0, res.damage)
	assert.Equal(t, "The fire type attack fizzled out in the heavy rain!\n", res.msg)

	b.Weather.Set(b, WeatherHeavySun, nil)
	res = b.calculateDamage(charizard, snorlax, charizard.Moves[1])
	assert.Equal(t, "The water type attack evaporated in the harsh sunlight!\n", res.msg)
}

func TestCalculateDamage_WeatherBoost(t *testing.T) {
	b, blastoise, snorlax := damageBattle(t, nil, mon("blastoise", withMoves("surf")), mon("snorlax"))

	dry := b.calculateDamage(blastoise, snorlax, blastoise.Moves[0]).damage
	b.Weather.Set(b, WeatherRain, nil)
	wet := b.calculateDamage(blastoise, snorlax, blastoise.Moves[0]).damage
	assert.InDelta(t, float64(dry)*1.5, float64(wet), 2)
}

func TestCalculateDamage_CriticalHits(t *testing.T) {
	roller := &scriptedRoller{}
	b, snorlax, chansey := damageBattle(t, roller, mon("snorlax"), mon("chansey"))
	normal := b.calculateDamage(snorlax, chansey, snorlax.Moves[0]).damage

	roller.rolls = []int{1}
	res := b.calculateDamage(snorlax, chansey, snorlax.Moves[0])
	require.True(t, res.critical)
	assert.InDelta(t, float64(normal)*1.5, float64(res.damage), 2)

	snorlax.SetStage(StatAttack, -2)
	chansey.SetStage(StatDefense, 2)
	roller.rolls = []int{1}
	res = b.calculateDamage(snorlax, chansey, snorlax.Moves[0])
	require.True(t, res.critical)
	assert.InDelta(t, float64(normal)*1.5, float64(res.damage), 2, "crits ignore unfavourable stages")

	chansey.AbilityID = AbilityShellArmor
	roller.rolls = []int{1}
	assert.False(t, b.calculateDamage(snorlax, chansey, snorlax.Moves[0]).critical)
}

func TestCalculateDamage_FocusEnergyGuaranteesCritWithLansat(t *testing.T) {
	b, snorlax, chansey := damageBattle(t, nil, mon("snorlax"), mon("chansey"))
	snorlax.FocusEnergy = true
	snorlax.LansatBerryAte = true

	assert.True(t, b.calculateDamage(snorlax, chansey, snorlax.Moves[0]).critical)
}

func TestCalculateDamage_ResistBerry(t *testing.T) {
	b, charizard, venusaur := damageBattle(t, nil,
		mon("charizard", withMoves("flamethrower")), mon("venusaur", withItem("occa-berry")))

	res := b.calculateDamage(charizard, venusaur, charizard.Moves[0])
	assert.Equal(t, 2.0, res.effectiveness)
	assert.Equal(t, "Venusaur's Occa Berry weakened the attack!\n", res.msg)

	second := b.calculateDamage(charizard, venusaur, charizard.Moves[0])
	assert.InDelta(t, float64(res.damage)*2, float64(second.damage), 2)
}

func TestConfusionDamage(t *testing.T) {
	b, snorlax, chansey := damageBattle(t, nil, mon("snorlax"), mon("chansey"))

	// Level 100 Snorlax: 256 attack, 166 defense.
	// floor(floor(42*40*256/166)/50)+2 = floor(2590/50)+2
	assert.Equal(t, 53, b.confusionDamage(snorlax))

	snorlax.SetStage(StatAttack, 2)
	assert.Equal(t, 105, b.confusionDamage(snorlax))

	// Equal attack and defense: floor(1680/50)+2
	assert.Equal(t, 35, b.confusionDamage(chansey))
}
