package battle

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type StatusTestSuite struct {
	suite.Suite
	roller *scriptedRoller
}

func TestStatusSuite(t *testing.T) {
	suite.Run(t, new(StatusTestSuite))
}

func (s *StatusTestSuite) battle(side1, side2 *PokemonConfig) (*Battle, *Pokemon, *Pokemon) {
	s.roller = &scriptedRoller{}
	b := newTestBattle(s.T(), s.roller, []*PokemonConfig{side1}, []*PokemonConfig{side2})
	return b, b.Trainer1.Current(), b.Trainer2.Current()
}

func (s *StatusTestSuite) TestOnlyOneStatusAtATime() {
	b, snorlax, chansey := s.battle(mon("snorlax", withAbility("thick-fat")), mon("chansey"))

	s.Equal("Snorlax was burned!\n", snorlax.NV.ApplyStatus(b, StatusBurn, StatusOptions{Attacker: chansey}))
	s.Equal("Snorlax already has a status, it can't get paralysis too!\n",
		snorlax.NV.ApplyStatus(b, StatusParalysis, StatusOptions{Attacker: chansey}))
	s.Equal(StatusBurn, snorlax.NV.Current())
}

func (s *StatusTestSuite) TestForceReplacesStatus() {
	b, snorlax, _ := s.battle(mon("snorlax", withAbility("thick-fat")), mon("chansey"))

	snorlax.NV.ApplyStatus(b, StatusSleep, StatusOptions{Turns: 3})
	s.True(snorlax.NV.SleepTimer.Active())

	snorlax.NV.ApplyStatus(b, StatusBurn, StatusOptions{Force: true})
	s.Equal(StatusBurn, snorlax.NV.Current())
	s.False(snorlax.NV.SleepTimer.Active())
}

func (s *StatusTestSuite) TestTypeImmunities() {
	testCases := []struct {
		name    string
		species string
		status  Status
		want    string
	}{
		{name: "fire can't burn", species: "charmander", status: StatusBurn,
			want: "Charmander is a fire type and can't be burned!\n"},
		{name: "electric can't paralyze", species: "pikachu", status: StatusParalysis,
			want: "Pikachu is an electric type and can't be paralyzed!\n"},
		{name: "steel can't poison", species: "skarmory", status: StatusPoison,
			want: "Skarmory is a steel type and can't be poisoned!\n"},
		{name: "poison can't poison", species: "gengar", status: StatusBadPoison,
			want: "Gengar is a poison type and can't be poisoned!\n"},
		{name: "ice can't freeze", species: "abomasnow", status: StatusFreeze,
			want: "Abomasnow is an ice type and can't be frozen!\n"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			b, p, foe := s.battle(mon(tc.species), mon("chansey"))
			s.Equal(tc.want, p.NV.ApplyStatus(b, tc.status, StatusOptions{Attacker: foe}))
			s.Equal(StatusNone, p.NV.Current())
		})
	}
}

func (s *StatusTestSuite) TestCorrosionPoisonsSteel() {
	b, skarmory, foe := s.battle(mon("skarmory"), mon("gengar", withAbility(AbilityCorrosion)))

	s.Equal("Skarmory was poisoned!\n", skarmory.NV.ApplyStatus(b, StatusPoison, StatusOptions{Attacker: foe}))
}

func (s *StatusTestSuite) TestFieldProtection() {
	b, snorlax, chansey := s.battle(mon("snorlax", withAbility("thick-fat")), mon("chansey"))

	snorlax.Owner.Safeguard.SetTurns(fieldTurns)
	s.Equal("Snorlax's safeguard protects it from being inflicted with burn!\n",
		snorlax.NV.ApplyStatus(b, StatusBurn, StatusOptions{Attacker: chansey}))

	chansey.AbilityID = AbilityInfiltrator
	s.Equal("Snorlax was burned!\n", snorlax.NV.ApplyStatus(b, StatusBurn, StatusOptions{Attacker: chansey}))

	snorlax.NV.Reset()
	snorlax.Owner.Safeguard.SetTurns(0)
	b.Terrain.Set(b, TerrainMisty, nil)
	s.Equal("The misty terrain protects Snorlax from being inflicted with sleep!\n",
		snorlax.NV.ApplyStatus(b, StatusSleep, StatusOptions{Attacker: chansey}))
}

func (s *StatusTestSuite) TestMiniorShell() {
	b, minior, chansey := s.battle(mon("minior"), mon("chansey"))

	s.Equal("Minior's hard shell protects it from status effects!\n",
		minior.NV.ApplyStatus(b, StatusBurn, StatusOptions{Attacker: chansey}))
}

func (s *StatusTestSuite) TestSynchronizePassesStatusBack() {
	b, espeon, snorlax := s.battle(mon("espeon"), mon("snorlax", withAbility("thick-fat")))

	msg := espeon.NV.ApplyStatus(b, StatusBurn, StatusOptions{Attacker: snorlax})
	s.Equal("Espeon was burned!\nSnorlax was burned from Espeon's synchronize!\n", msg)
	s.Equal(StatusBurn, snorlax.NV.Current())
}

func (s *StatusTestSuite) TestSelfInflictedStatusSkipsSynchronize() {
	b, espeon, snorlax := s.battle(mon("espeon", withItem("flame-orb")), mon("snorlax"))

	espeon.HeldItem.ActivateEndOfTurn(b)
	s.Equal(StatusBurn, espeon.NV.Current())
	s.Equal(StatusNone, snorlax.NV.Current())
}

func (s *StatusTestSuite) TestSleepCountsDown() {
	b, snorlax, _ := s.battle(mon("snorlax", withAbility("thick-fat")), mon("chansey"))

	snorlax.NV.ApplyStatus(b, StatusSleep, StatusOptions{Turns: 2})

	msg, ok := b.canAct(snorlax)
	s.False(ok)
	s.Equal("Snorlax is fast asleep!\n", msg)

	msg, ok = b.canAct(snorlax)
	s.True(ok)
	s.Equal("Snorlax woke up!\n", msg)
	s.Equal(StatusNone, snorlax.NV.Current())
}

func (s *StatusTestSuite) TestEarlyBirdHalvesSleep() {
	b, snorlax, _ := s.battle(mon("snorlax", withAbility(AbilityEarlyBird)), mon("chansey"))

	snorlax.NV.ApplyStatus(b, StatusSleep, StatusOptions{Turns: 4})
	s.Equal(2, snorlax.NV.SleepTimer.Turns())
}

func (s *StatusTestSuite) TestEarlyBirdKeepsAtLeastOneTurn() {
	b, snorlax, _ := s.battle(mon("snorlax", withAbility(AbilityEarlyBird)), mon("chansey"))

	snorlax.NV.ApplyStatus(b, StatusSleep, StatusOptions{Turns: 1})
	s.Equal(1, snorlax.NV.SleepTimer.Turns())

	msg, ok := b.canAct(snorlax)
	s.True(ok)
	s.Equal("Snorlax woke up!\n", msg)
}

func (s *StatusTestSuite) TestWeatherAndTerrainGuards() {
	testCases := []struct {
		name    string
		ability string
		weather WeatherKind
		terrain TerrainKind
		status  Status
		want    string
	}{
		{name: "leaf guard in sun", ability: AbilityLeafGuard, weather: WeatherSun, status: StatusBurn,
			want: "Snorlax's leaf guard protects it from being inflicted with burn!\n"},
		{name: "leaf guard without sun", ability: AbilityLeafGuard, status: StatusBurn,
			want: "Snorlax was burned!\n"},
		{name: "electric terrain blocks sleep", ability: "thick-fat", terrain: TerrainElectric, status: StatusSleep,
			want: "The terrain is too electric for Snorlax to fall asleep!\n"},
		{name: "electric terrain allows burn", ability: "thick-fat", terrain: TerrainElectric, status: StatusBurn,
			want: "Snorlax was burned!\n"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			b, snorlax, chansey := s.battle(mon("snorlax", withAbility(tc.ability)), mon("chansey"))
			if tc.weather != WeatherNone {
				b.Weather.Set(b, tc.weather, nil)
			}
			if tc.terrain != TerrainNone {
				b.Terrain.Set(b, tc.terrain, nil)
			}
			s.Equal(tc.want, snorlax.NV.ApplyStatus(b, tc.status, StatusOptions{Attacker: chansey}))
		})
	}
}

func (s *StatusTestSuite) TestFreezeAndParalysis() {
	b, snorlax, _ := s.battle(mon("snorlax", withAbility("thick-fat")), mon("chansey"))

	snorlax.NV.ApplyStatus(b, StatusFreeze, StatusOptions{})
	msg, ok := b.canAct(snorlax)
	s.False(ok)
	s.Equal("Snorlax is frozen solid!\n", msg)

	s.roller.rolls = []int{1}
	msg, ok = b.canAct(snorlax)
	s.True(ok)
	s.Equal("Snorlax thawed out!\n", msg)

	snorlax.NV.ApplyStatus(b, StatusParalysis, StatusOptions{})
	s.roller.rolls = []int{1}
	msg, ok = b.canAct(snorlax)
	s.False(ok)
	s.Equal("Snorlax is paralyzed! It can't move!\n", msg)
	_, ok = b.canAct(snorlax)
	s.True(ok)
}

func (s *StatusTestSuite) TestEndOfTurnDamage() {
	b, snorlax, _ := s.battle(mon("snorlax", withAbility("thick-fat")), mon("chansey"))
	maxHP := snorlax.MaxHP

	snorlax.NV.ApplyStatus(b, StatusBurn, StatusOptions{})
	s.Equal(fmt.Sprintf("Snorlax took %d damage from its burn!\n", maxHP/16), snorlax.NV.NextTurn(b))

	snorlax.HP = maxHP
	snorlax.NV.ApplyStatus(b, StatusBadPoison, StatusOptions{Force: true})
	s.Equal(fmt.Sprintf("Snorlax took %d damage from its bad poison!\n", maxHP/16), snorlax.NV.NextTurn(b))
	s.Equal(fmt.Sprintf("Snorlax took %d damage from its bad poison!\n", 2*(maxHP/16)), snorlax.NV.NextTurn(b))

	snorlax.HP = maxHP / 2
	snorlax.AbilityID = AbilityPoisonHeal
	s.Equal(fmt.Sprintf("Snorlax healed %d HP from its poison heal!\n", maxHP/8), snorlax.NV.NextTurn(b))
}

func (s *StatusTestSuite) TestBadPoisonEscalates() {
	b, snorlax, _ := s.battle(mon("snorlax", withAbility("thick-fat")), mon("chansey"))
	step := snorlax.MaxHP / 16

	snorlax.NV.ApplyStatus(b, StatusBadPoison, StatusOptions{})
	for turn := 1; turn <= 17; turn++ {
		snorlax.HP = snorlax.MaxHP
		want := fmt.Sprintf("Snorlax took %d damage from its bad poison!\n", step*min(15, turn))
		s.Equal(want, snorlax.NV.NextTurn(b), "turn %d", turn)
	}
}

func (s *StatusTestSuite) TestBadPoisonCounterSurvivesReapply() {
	b, snorlax, _ := s.battle(mon("snorlax", withAbility("thick-fat")), mon("chansey"))
	step := snorlax.MaxHP / 16

	snorlax.NV.ApplyStatus(b, StatusBadPoison, StatusOptions{})
	snorlax.NV.NextTurn(b)
	snorlax.NV.NextTurn(b)

	snorlax.HP = snorlax.MaxHP
	snorlax.NV.ApplyStatus(b, StatusBadPoison, StatusOptions{Force: true})
	s.Equal(2, snorlax.NV.BadlyPoisonedTurn)
	s.Equal(fmt.Sprintf("Snorlax took %d damage from its bad poison!\n", 3*step), snorlax.NV.NextTurn(b))

	snorlax.NV.Reset()
	s.Equal(0, snorlax.NV.BadlyPoisonedTurn)
	snorlax.HP = snorlax.MaxHP
	snorlax.NV.ApplyStatus(b, StatusBadPoison, StatusOptions{})
	s.Equal(fmt.Sprintf("Snorlax took %d damage from its bad poison!\n", step), snorlax.NV.NextTurn(b))
}

func (s *StatusTestSuite) TestShedSkin() {
	b, snorlax, _ := s.battle(mon("snorlax", withAbility(AbilityShedSkin)), mon("chansey"))
	snorlax.NV.ApplyStatus(b, StatusBurn, StatusOptions{})

	s.roller.rolls = []int{2}
	s.Equal(fmt.Sprintf("Snorlax took %d damage from its burn!\n", snorlax.MaxHP/16), snorlax.NV.NextTurn(b))
	s.Equal(StatusBurn, snorlax.NV.Current())

	s.roller.rolls = []int{1}
	s.Equal("Snorlax's shed skin cured its burn!\n", snorlax.NV.NextTurn(b))
	s.Equal(StatusNone, snorlax.NV.Current())
}

func (s *StatusTestSuite) TestHeatproofHalvesBurn() {
	b, snorlax, _ := s.battle(mon("snorlax", withAbility(AbilityHeatproof)), mon("chansey"))
	snorlax.NV.ApplyStatus(b, StatusBurn, StatusOptions{})

	s.Equal(fmt.Sprintf("Snorlax took %d damage from its burn!\n", (snorlax.MaxHP/16)/2), snorlax.NV.NextTurn(b))
}

func (s *StatusTestSuite) TestNightmare() {
	b, snorlax, _ := s.battle(mon("snorlax", withAbility("thick-fat")), mon("chansey"))
	snorlax.NV.ApplyStatus(b, StatusSleep, StatusOptions{Turns: 3})

	s.Empty(snorlax.NV.NextTurn(b))

	snorlax.Nightmare = true
	s.Equal(fmt.Sprintf("Snorlax took %d damage from its nightmare!\n", snorlax.MaxHP/4), snorlax.NV.NextTurn(b))

	snorlax.NV.Reset()
	s.False(snorlax.Nightmare)
}

func (s *StatusTestSuite) TestHydrationCuresInRain() {
	b, snorlax, _ := s.battle(mon("snorlax", withAbility(AbilityHydration)), mon("chansey"))

	snorlax.NV.ApplyStatus(b, StatusBurn, StatusOptions{})
	b.Weather.Set(b, WeatherRain, nil)
	s.Equal("Snorlax's hydration cured its burn!\n", snorlax.NV.NextTurn(b))
	s.Equal(StatusNone, snorlax.NV.Current())
}

func (s *StatusTestSuite) TestStatusEventPublishedOnFlush() {
	b, snorlax, chansey := s.battle(mon("snorlax", withAbility("thick-fat")), mon("chansey"))
	bus := &recordingBus{}
	b.bus = bus

	snorlax.NV.ApplyStatus(b, StatusParalysis, StatusOptions{Attacker: chansey})
	s.Empty(bus.published, "queued until flush")

	s.Require().NoError(b.flush(context.Background()))
	s.Equal([]string{EventStatusApplied}, bus.types())
	status, ok := bus.published[0].Context().Get(KeyStatus)
	s.True(ok)
	s.Equal("paralysis", status)
}
