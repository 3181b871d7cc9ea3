package battle

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokeduel/internal/errors"
)

type PokemonTestSuite struct {
	suite.Suite
}

func TestPokemonSuite(t *testing.T) {
	suite.Run(t, new(PokemonTestSuite))
}

func (s *PokemonTestSuite) TestNewPokemonValidation() {
	store := testStore(s.T())

	testCases := []struct {
		name  string
		cfg   *PokemonConfig
		check func(error) bool
	}{
		{name: "nil config", cfg: nil, check: errors.IsInvalidArgument},
		{name: "missing id", cfg: &PokemonConfig{Species: "snorlax", Moves: []string{"tackle"}}, check: errors.IsInvalidArgument},
		{name: "no moves", cfg: &PokemonConfig{ID: "p", Species: "snorlax"}, check: errors.IsInvalidArgument},
		{name: "too many moves", cfg: &PokemonConfig{ID: "p", Species: "snorlax",
			Moves: []string{"tackle", "surf", "rest", "ember", "growl"}}, check: errors.IsInvalidArgument},
		{name: "level out of range", cfg: &PokemonConfig{ID: "p", Species: "snorlax", Level: 101,
			Moves: []string{"tackle"}}, check: errors.IsInvalidArgument},
		{name: "unknown species", cfg: &PokemonConfig{ID: "p", Species: "missingno", Moves: []string{"tackle"}}, check: errors.IsNotFound},
		{name: "unknown move", cfg: &PokemonConfig{ID: "p", Species: "snorlax", Moves: []string{"splash-dance"}}, check: errors.IsNotFound},
		{name: "unknown item", cfg: &PokemonConfig{ID: "p", Species: "snorlax", Item: "rare-candy",
			Moves: []string{"tackle"}}, check: errors.IsNotFound},
		{name: "unknown ability", cfg: &PokemonConfig{ID: "p", Species: "snorlax", Ability: "wonder-guard",
			Moves: []string{"tackle"}}, check: errors.IsNotFound},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			p, err := NewPokemon(store, tc.cfg)
			s.Require().Error(err)
			s.Nil(p)
			s.True(tc.check(err), "unexpected error: %v", err)
		})
	}
}

func (s *PokemonTestSuite) TestNewPokemonDefaults() {
	p, err := NewPokemon(testStore(s.T()), &PokemonConfig{ID: "p1", Species: "Snorlax", Moves: []string{"tackle", "rest"}})
	s.Require().NoError(err)

	s.Equal(DefaultLevel, p.Level)
	s.Equal("immunity", p.Ability())
	s.Equal(461, p.MaxHP)
	s.Equal(p.MaxHP, p.HP)
	s.Len(p.Moves, 2)
	s.Equal(35, p.Moves[0].PP)
	s.False(p.HeldItem.HasItem())
	s.False(p.HeldItem.EverHadItem)
	s.Equal(StatusNone, p.NV.Current())
	s.Equal("Snorlax", p.Name())
}

func (s *PokemonTestSuite) TestLevelScalesStats() {
	p, err := NewPokemon(testStore(s.T()), &PokemonConfig{ID: "p1", Species: "snorlax", Level: 50, Moves: []string{"tackle"}})
	s.Require().NoError(err)
	s.Equal(235, p.MaxHP)
}

func (s *PokemonTestSuite) TestAppendStat() {
	b := newTestBattle(s.T(), nil, []*PokemonConfig{mon("snorlax")}, []*PokemonConfig{mon("chansey")})
	snorlax, chansey := b.Trainer1.Current(), b.Trainer2.Current()
	self := StatChange{Attacker: snorlax}

	s.Equal("Snorlax's attack rose!\n", snorlax.AppendStat(StatAttack, 1, self))
	s.Equal("Snorlax's attack rose sharply!\n", snorlax.AppendStat(StatAttack, 2, self))
	s.Equal("Snorlax's attack rose drastically!\n", snorlax.AppendStat(StatAttack, 3, self))
	s.Equal(6, snorlax.Stage(StatAttack))
	s.Equal("Snorlax's attack won't go any higher!\n", snorlax.AppendStat(StatAttack, 1, self))

	s.Equal("Snorlax's speed harshly fell!\n", snorlax.AppendStat(StatSpeed, -2, StatChange{Attacker: chansey}))
	s.Equal("Snorlax's speed severely fell!\n", snorlax.AppendStat(StatSpeed, -3, StatChange{Attacker: chansey}))
	s.Equal(-5, snorlax.Stage(StatSpeed))
	s.Equal("Snorlax's speed fell!\n", snorlax.AppendStat(StatSpeed, -1, StatChange{Attacker: chansey}))
	s.Equal("Snorlax's speed won't go any lower!\n", snorlax.AppendStat(StatSpeed, -1, StatChange{Attacker: chansey}))
}

func (s *PokemonTestSuite) TestStatAbilities() {
	b := newTestBattle(s.T(), nil, []*PokemonConfig{mon("snorlax")}, []*PokemonConfig{mon("chansey")})
	snorlax, chansey := b.Trainer1.Current(), b.Trainer2.Current()

	snorlax.AbilityID = AbilitySimple
	snorlax.AppendStat(StatDefense, 1, StatChange{Attacker: snorlax})
	s.Equal(2, snorlax.Stage(StatDefense))

	snorlax.AbilityID = AbilityContrary
	snorlax.AppendStat(StatDefense, 1, StatChange{Attacker: snorlax})
	s.Equal(1, snorlax.Stage(StatDefense))

	snorlax.AbilityID = AbilityClearBody
	s.Equal("Snorlax's Clear Body prevents its stats from being lowered!\n",
		snorlax.AppendStat(StatDefense, -1, StatChange{Attacker: chansey}))
	s.Equal(1, snorlax.Stage(StatDefense))
	snorlax.AppendStat(StatDefense, -1, StatChange{Attacker: snorlax})
	s.Equal(0, snorlax.Stage(StatDefense), "self inflicted drops are allowed")

	tackle, err := NewMove(mustMove(s.T(), b, "tackle"))
	s.Require().NoError(err)
	chansey.AbilityID = AbilityMoldBreaker
	snorlax.AppendStat(StatDefense, -1, StatChange{Attacker: chansey, Move: tackle})
	s.Equal(-1, snorlax.Stage(StatDefense), "mold breaker ignores clear body")
}

func (s *PokemonTestSuite) TestEffectiveSpeed() {
	b := newTestBattle(s.T(), nil,
		[]*PokemonConfig{mon("snorlax", withItem("choice-scarf"))},
		[]*PokemonConfig{mon("psyduck", withAbility(AbilitySwiftSwim))})
	snorlax, psyduck := b.Trainer1.Current(), b.Trainer2.Current()

	s.Equal(144, snorlax.EffectiveSpeed(b))
	snorlax.NV.ApplyStatus(b, StatusParalysis, StatusOptions{})
	s.Equal(72, snorlax.EffectiveSpeed(b))
	snorlax.AbilityID = AbilityQuickFeet
	s.Equal(216, snorlax.EffectiveSpeed(b))

	dry := psyduck.EffectiveSpeed(b)
	b.Weather.Set(b, WeatherRain, nil)
	s.Equal(dry*2, psyduck.EffectiveSpeed(b))

	psyduck.SetStage(StatSpeed, 2)
	s.Equal(dry*4, psyduck.EffectiveSpeed(b))
}

func (s *PokemonTestSuite) TestGrounded() {
	b := newTestBattle(s.T(), nil,
		[]*PokemonConfig{mon("charizard")},
		[]*PokemonConfig{mon("snorlax", withItem("air-balloon"))})
	charizard, snorlax := b.Trainer1.Current(), b.Trainer2.Current()

	s.False(charizard.Grounded(b, nil, nil))
	s.False(snorlax.Grounded(b, nil, nil))

	charizard.Ingrain = true
	s.True(charizard.Grounded(b, nil, nil))

	s.Require().NoError(snorlax.HeldItem.Remove())
	s.True(snorlax.Grounded(b, nil, nil))
	snorlax.MagnetRise.SetTurns(fieldTurns)
	s.False(snorlax.Grounded(b, nil, nil))
}

func (s *PokemonTestSuite) TestDamageAndHeal() {
	b := newTestBattle(s.T(), nil, []*PokemonConfig{mon("snorlax")}, []*PokemonConfig{mon("chansey")})
	snorlax := b.Trainer1.Current()

	s.Equal("Snorlax took 61 damage from the hail!\n", snorlax.Damage(b, 61, "the hail"))
	s.Equal("Snorlax healed 61 HP!\n", snorlax.Heal(100, ""))
	s.Empty(snorlax.Heal(10, ""), "already full")

	snorlax.HP = 10
	snorlax.HealBlock.SetTurns(fieldTurns)
	s.Empty(snorlax.Heal(10, ""))

	s.Equal("Snorlax took 10 damage!\nSnorlax fainted!\n", snorlax.Damage(b, 500, ""))
	s.True(snorlax.Fainted())
	s.Empty(snorlax.Damage(b, 1, ""))
}

func (s *PokemonTestSuite) TestConfuse() {
	b := newTestBattle(s.T(), nil,
		[]*PokemonConfig{mon("snorlax", withAbility(AbilityOwnTempo))},
		[]*PokemonConfig{mon("chansey")})
	snorlax, chansey := b.Trainer1.Current(), b.Trainer2.Current()

	s.Equal("Snorlax's own tempo prevents it from getting confused!\n", snorlax.Confuse(b, chansey, nil, ""))

	msg := chansey.Confuse(b, snorlax, nil, "")
	s.Equal("Chansey became confused!\n", msg)
	s.Equal(5, chansey.Confusion.Turns())
	s.Empty(chansey.Confuse(b, snorlax, nil, ""), "already confused")
}

func (s *PokemonTestSuite) TestClearVolatileRestoresForm() {
	b := newTestBattle(s.T(), nil, []*PokemonConfig{mon("castform")}, []*PokemonConfig{mon("chansey")})
	castform := b.Trainer1.Current()

	b.Weather.Set(b, WeatherSun, nil)
	s.Equal("Castform-sunny", castform.FormName())
	castform.SetStage(StatAttack, 3)
	castform.LeechSeed = true
	castform.Confusion.SetTurns(2)

	castform.clearVolatile()
	s.Equal("Castform", castform.FormName())
	s.Equal(0, castform.Stage(StatAttack))
	s.False(castform.LeechSeed)
	s.False(castform.Confusion.Active())
}

func TestClearVolatileLogsBrokenBaseForm(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	b := newTestBattle(t, nil, []*PokemonConfig{mon("castform")}, []*PokemonConfig{mon("chansey")})
	castform := b.Trainer1.Current()
	b.Weather.Set(b, WeatherSun, nil)
	require.Equal(t, "Castform-sunny", castform.FormName())

	broken := *castform.species
	broken.Types = []string{"plasma"}
	castform.species = &broken

	castform.clearVolatile()
	assert.Equal(t, "Castform-sunny", castform.FormName())
	assert.Contains(t, buf.String(), "Failed to restore base form")
	assert.Contains(t, buf.String(), "plasma")
}

func TestSetFormRejectsOtherSpecies(t *testing.T) {
	b := newTestBattle(t, nil, []*PokemonConfig{mon("castform")}, []*PokemonConfig{mon("chansey")})
	castform := b.Trainer1.Current()

	assert.False(t, castform.SetForm(b, "Snorlax"))
	assert.False(t, castform.SetForm(b, "Castform-stormy"))
	require.True(t, castform.SetForm(b, "Castform-rainy"))
	assert.True(t, castform.HasType(ElementWater))
}

func TestTrainerValidation(t *testing.T) {
	_, err := NewTrainer("t1", "ash", nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "party")

	store := testStore(t)
	party := make([]*Pokemon, MaxPartySize+1)
	for i := range party {
		p, err := NewPokemon(store, &PokemonConfig{ID: "p", Species: "ditto", Moves: []string{"tackle"}})
		require.NoError(t, err)
		party[i] = p
	}
	_, err = NewTrainer("t1", "ash", party)
	assert.True(t, errors.IsInvalidArgument(err))

	tr, err := NewTrainer("t1", "ash", party[:2])
	require.NoError(t, err)
	assert.Same(t, tr, party[0].Owner)
	assert.Equal(t, 0, tr.ActiveIndex())
	assert.Equal(t, 1, tr.NextHealthy())
	assert.True(t, errors.IsInvalidArgument(tr.canSwitchTo(0)))
	assert.True(t, errors.IsInvalidArgument(tr.canSwitchTo(5)))

	party[1].HP = 0
	assert.Equal(t, -1, tr.NextHealthy())
	assert.Equal(t, 1, tr.Remaining())
	assert.True(t, errors.IsInvalidArgument(tr.canSwitchTo(1)))
}
