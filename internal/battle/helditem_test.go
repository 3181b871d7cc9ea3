package battle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokeduel/internal/errors"
)

type HeldItemTestSuite struct {
	suite.Suite
	roller *scriptedRoller
	b      *Battle
}

func TestHeldItemSuite(t *testing.T) {
	suite.Run(t, new(HeldItemTestSuite))
}

// setup builds a snorlax holding item1 against a chansey holding item2.
func (s *HeldItemTestSuite) setup(item1, item2 string) (*Pokemon, *Pokemon) {
	s.roller = &scriptedRoller{}
	s.b = newTestBattle(s.T(), s.roller,
		[]*PokemonConfig{mon("snorlax", withItem(item1))},
		[]*PokemonConfig{mon("chansey", withItem(item2))})
	return s.b.Trainer1.Current(), s.b.Trainer2.Current()
}

func (s *HeldItemTestSuite) move(identifier string) *Move {
	data, ok := s.b.Dex.Move(identifier)
	s.Require().True(ok)
	m, err := NewMove(data)
	s.Require().NoError(err)
	return m
}

func (s *HeldItemTestSuite) TestUnremovableItemOperationsFail() {
	snorlax, chansey := s.setup("flame-plate", "leftovers")

	err := snorlax.HeldItem.Remove()
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal("flame-plate", snorlax.HeldItem.Name())

	s.True(errors.IsFailedPrecondition(snorlax.HeldItem.Use()))
	s.Nil(snorlax.HeldItem.LastUsed)

	s.True(errors.IsFailedPrecondition(chansey.HeldItem.Swap(snorlax.HeldItem)))
	s.Equal("flame-plate", snorlax.HeldItem.Name())
	s.Equal("leftovers", chansey.HeldItem.Name())

	s.True(errors.IsFailedPrecondition(snorlax.HeldItem.Transfer(chansey.HeldItem)))
	s.True(errors.IsFailedPrecondition(chansey.HeldItem.Transfer(snorlax.HeldItem)))
	s.Equal("flame-plate", snorlax.HeldItem.Name())
	s.Equal("leftovers", chansey.HeldItem.Name())
}

func (s *HeldItemTestSuite) TestUnremovableItemsIgnoreSuppression() {
	snorlax, chansey := s.setup("flame-plate", "leftovers")

	s.b.MagicRoom.SetTurns(fieldTurns)
	s.Equal("flame-plate", snorlax.HeldItem.Get(s.b))
	s.Empty(chansey.HeldItem.Get(s.b))
	s.Equal("leftovers", chansey.HeldItem.Name(), "suppression does not remove")

	s.b.MagicRoom.SetTurns(0)
	chansey.Embargo.SetTurns(fieldTurns)
	s.Empty(chansey.HeldItem.Get(s.b))

	chansey.Embargo.SetTurns(0)
	chansey.AbilityID = AbilityKlutz
	s.Empty(chansey.HeldItem.Get(s.b))

	chansey.AbilityID = "natural-cure"
	chansey.CorrosiveGas = true
	s.Empty(chansey.HeldItem.Get(s.b))
}

func (s *HeldItemTestSuite) TestSwapAndRecover() {
	snorlax, chansey := s.setup("leftovers", "")
	s.False(chansey.HeldItem.EverHadItem)

	s.Require().NoError(snorlax.HeldItem.Swap(chansey.HeldItem))
	s.False(snorlax.HeldItem.HasItem())
	s.Equal("leftovers", chansey.HeldItem.Name())
	s.True(chansey.HeldItem.EverHadItem)

	s.Require().NoError(chansey.HeldItem.Use())
	s.Equal("leftovers", chansey.HeldItem.LastUsed.Identifier)

	snorlax.HeldItem.Recover(chansey.HeldItem)
	s.Equal("leftovers", snorlax.HeldItem.Name())
	s.Nil(chansey.HeldItem.LastUsed)
}

func (s *HeldItemTestSuite) TestFocusSashHoldsOn() {
	snorlax, _ := s.setup("focus-sash", "")
	snorlax.MaxHP, snorlax.HP = 100, 100

	msg := snorlax.TakeHit(s.b, 150, Hit{})
	s.Equal(1, snorlax.HP)
	s.False(snorlax.HeldItem.HasItem())
	s.Equal("Snorlax held on with its Focus Sash!\n", msg)

	msg = snorlax.TakeHit(s.b, 150, Hit{})
	s.True(snorlax.Fainted())
	s.Contains(msg, "Snorlax fainted!")
}

func (s *HeldItemTestSuite) TestFocusSashNeedsFullHP() {
	snorlax, _ := s.setup("focus-sash", "")
	snorlax.HP = snorlax.MaxHP - 1

	snorlax.TakeHit(s.b, snorlax.MaxHP, Hit{})
	s.True(snorlax.Fainted())
	s.True(snorlax.HeldItem.HasItem())
}

func (s *HeldItemTestSuite) TestFocusBand() {
	snorlax, _ := s.setup("focus-band", "")
	s.roller.rolls = []int{1}

	msg := snorlax.TakeHit(s.b, snorlax.MaxHP*2, Hit{})
	s.Equal(1, snorlax.HP)
	s.Equal("Snorlax held on with its Focus Band!\n", msg)
	s.True(snorlax.HeldItem.HasItem(), "focus band is not consumed")

	snorlax.HP = snorlax.MaxHP
	snorlax.TakeHit(s.b, snorlax.MaxHP*2, Hit{})
	s.True(snorlax.Fainted(), "unlucky roll")
}

func (s *HeldItemTestSuite) TestWeaknessPolicy() {
	snorlax, chansey := s.setup("weakness-policy", "")
	tackle := s.move("tackle")

	snorlax.TakeHit(s.b, 10, Hit{Attacker: chansey, Move: tackle})
	s.True(snorlax.HeldItem.HasItem(), "neutral hit")

	msg := snorlax.TakeHit(s.b, 10, Hit{Attacker: chansey, Move: tackle, SuperEffective: true})
	s.Contains(msg, "Snorlax's attack rose sharply from its Weakness Policy!")
	s.Contains(msg, "Snorlax's special attack rose sharply from its Weakness Policy!")
	s.Equal(2, snorlax.Stage(StatAttack))
	s.Equal(2, snorlax.Stage(StatSpAtk))
	s.False(snorlax.HeldItem.HasItem())
}

func (s *HeldItemTestSuite) TestRockyHelmetNeedsContact() {
	snorlax, chansey := s.setup("rocky-helmet", "")

	snorlax.TakeHit(s.b, 10, Hit{Attacker: chansey, Move: s.move("hyper-voice")})
	s.Equal(chansey.MaxHP, chansey.HP)

	msg := snorlax.TakeHit(s.b, 10, Hit{Attacker: chansey, Move: s.move("tackle")})
	s.Contains(msg, fmt.Sprintf("Chansey took %d damage from Snorlax's Rocky Helmet!", chansey.MaxHP/6))
	s.True(snorlax.HeldItem.HasItem())
}

func (s *HeldItemTestSuite) TestRedCardForcesAttackerOut() {
	snorlax, chansey := s.setup("red-card", "")

	msg := snorlax.TakeHit(s.b, 10, Hit{Attacker: chansey, Move: s.move("tackle")})
	s.Contains(msg, "Chansey was forced to switch by the Red Card!")
	s.True(chansey.Owner.MidTurnRemove)
	s.False(snorlax.HeldItem.HasItem())
}

func (s *HeldItemTestSuite) TestLeftovers() {
	snorlax, _ := s.setup("leftovers", "")
	snorlax.HP = snorlax.MaxHP / 2

	msg := snorlax.HeldItem.ActivateEndOfTurn(s.b)
	s.Equal(fmt.Sprintf("Snorlax healed %d HP from its Leftovers!\n", snorlax.MaxHP/16), msg)
	s.Equal(snorlax.MaxHP/2+snorlax.MaxHP/16, snorlax.HP)
}

func (s *HeldItemTestSuite) TestBlackSludgeHurtsNonPoisonTypes() {
	snorlax, _ := s.setup("black-sludge", "")

	msg := snorlax.HeldItem.ActivateEndOfTurn(s.b)
	s.Equal(fmt.Sprintf("Snorlax took %d damage from its Black Sludge!\n", snorlax.MaxHP/8), msg)
}

func (s *HeldItemTestSuite) TestToxicOrb() {
	snorlax, _ := s.setup("toxic-orb", "")
	snorlax.AbilityID = "thick-fat"

	msg := snorlax.HeldItem.ActivateEndOfTurn(s.b)
	s.Equal("Snorlax was badly poisoned from its Toxic Orb!\n", msg)
	s.Equal(StatusBadPoison, snorlax.NV.Current())
	s.True(snorlax.HeldItem.HasItem())
}

func (s *HeldItemTestSuite) TestLifeOrbRecoilOnlyAfterDamagingMove() {
	snorlax, _ := s.setup("life-orb", "")

	s.Empty(snorlax.HeldItem.ActivateEndOfTurn(s.b))

	snorlax.UsedDamagingMove = true
	msg := snorlax.HeldItem.ActivateEndOfTurn(s.b)
	s.Equal(fmt.Sprintf("Snorlax took %d damage from Life Orb recoil!\n", snorlax.MaxHP/10), msg)
}

func (s *HeldItemTestSuite) TestThroatSpray() {
	snorlax, _ := s.setup("throat-spray", "")

	s.Empty(snorlax.HeldItem.ActivateOnMoveUse(s.b, s.move("tackle")))
	msg := snorlax.HeldItem.ActivateOnMoveUse(s.b, s.move("hyper-voice"))
	s.Equal("Snorlax's special attack rose from its Throat Spray!\n", msg)
	s.False(snorlax.HeldItem.HasItem())
}

func (s *HeldItemTestSuite) TestBoosterEnergy() {
	s.b = newTestBattle(s.T(), nil,
		[]*PokemonConfig{mon("great-tusk", withItem("booster-energy"))},
		[]*PokemonConfig{mon("chansey")})
	tusk := s.b.Trainer1.Current()

	s.Equal("Great Tusk's Booster Energy activated its ability!\n", tusk.HeldItem.ActivateOnSwitchIn(s.b))
	s.True(tusk.BoosterEnergy)
	s.False(tusk.HeldItem.HasItem())
}

func (s *HeldItemTestSuite) TestWhiteHerbRestoresLoweredStats() {
	snorlax, _ := s.setup("white-herb", "")

	snorlax.SetStage(StatSpeed, 1)
	s.Empty(snorlax.HeldItem.ActivateEndOfTurn(s.b))
	s.True(snorlax.HeldItem.HasItem(), "nothing lowered")

	snorlax.SetStage(StatAttack, -2)
	snorlax.SetStage(StatSpDef, -1)
	s.Equal("Snorlax's White Herb restored its stats!\n", snorlax.HeldItem.ActivateEndOfTurn(s.b))
	s.Equal(0, snorlax.Stage(StatAttack))
	s.Equal(0, snorlax.Stage(StatSpDef))
	s.Equal(1, snorlax.Stage(StatSpeed), "raised stats are kept")
	s.False(snorlax.HeldItem.HasItem())
}

func (s *HeldItemTestSuite) TestEjectButton() {
	snorlax, chansey := s.setup("eject-button", "")

	snorlax.TakeHit(s.b, 10, Hit{})
	s.True(snorlax.HeldItem.HasItem(), "needs an attacking move")

	msg := snorlax.TakeHit(s.b, 10, Hit{Attacker: chansey, Move: s.move("tackle")})
	s.Contains(msg, "Snorlax is forced to switch by its Eject Button!")
	s.True(snorlax.Owner.MidTurnRemove)
	s.False(chansey.Owner.MidTurnRemove)
	s.False(snorlax.HeldItem.HasItem())
}

func (s *HeldItemTestSuite) TestRecoilBerries() {
	testCases := []struct {
		name    string
		berry   string
		move    string
		trigger bool
	}{
		{name: "jaboca on physical hit", berry: "jaboca-berry", move: "tackle", trigger: true},
		{name: "jaboca ignores special hit", berry: "jaboca-berry", move: "hyper-voice"},
		{name: "rowap on special hit", berry: "rowap-berry", move: "hyper-voice", trigger: true},
		{name: "rowap ignores physical hit", berry: "rowap-berry", move: "tackle"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			snorlax, chansey := s.setup(tc.berry, "")

			msg := snorlax.TakeHit(s.b, 10, Hit{Attacker: chansey, Move: s.move(tc.move)})
			if !tc.trigger {
				s.Equal(chansey.MaxHP, chansey.HP)
				s.True(snorlax.HeldItem.HasItem())
				return
			}
			s.Contains(msg, fmt.Sprintf("Chansey took %d damage from Snorlax's %s!",
				chansey.MaxHP/8, prettyName(tc.berry)))
			s.Equal(chansey.MaxHP-chansey.MaxHP/8, chansey.HP)
			s.False(snorlax.HeldItem.HasItem())
		})
	}
}

func (s *HeldItemTestSuite) TestRoomServiceUnderTrickRoom() {
	snorlax, _ := s.setup("room-service", "")

	s.Empty(snorlax.HeldItem.ActivateOnSwitchIn(s.b))
	s.True(snorlax.HeldItem.HasItem())

	s.b.TrickRoom.SetTurns(fieldTurns)
	s.Equal("Snorlax's speed fell from its Room Service!\n", snorlax.HeldItem.ActivateOnSwitchIn(s.b))
	s.Equal(-1, snorlax.Stage(StatSpeed))
	s.False(snorlax.HeldItem.HasItem())
}

func TestItemStatMultipliers(t *testing.T) {
	testCases := []struct {
		name    string
		species string
		item    string
		stat    Stat
		want    float64
	}{
		{name: "eviolite defense", species: "chansey", item: "eviolite", stat: StatDefense, want: 1.5},
		{name: "eviolite special defense", species: "chansey", item: "eviolite", stat: StatSpDef, want: 1.5},
		{name: "eviolite attack", species: "chansey", item: "eviolite", stat: StatAttack, want: 1},
		{name: "eviolite fully evolved", species: "snorlax", item: "eviolite", stat: StatDefense, want: 1},
		{name: "assault vest", species: "snorlax", item: "assault-vest", stat: StatSpDef, want: 1.5},
		{name: "assault vest defense", species: "snorlax", item: "assault-vest", stat: StatDefense, want: 1},
		{name: "deep sea scale", species: "clamperl", item: "deep-sea-scale", stat: StatSpDef, want: 2},
		{name: "deep sea tooth", species: "clamperl", item: "deep-sea-tooth", stat: StatSpAtk, want: 2},
		{name: "deep sea tooth other species", species: "snorlax", item: "deep-sea-tooth", stat: StatSpAtk, want: 1},
		{name: "light ball attack", species: "pikachu", item: "light-ball", stat: StatAttack, want: 2},
		{name: "light ball special attack", species: "pikachu", item: "light-ball", stat: StatSpAtk, want: 2},
		{name: "light ball defense", species: "pikachu", item: "light-ball", stat: StatDefense, want: 1},
		{name: "thick club cubone", species: "cubone", item: "thick-club", stat: StatAttack, want: 2},
		{name: "thick club marowak", species: "marowak", item: "thick-club", stat: StatAttack, want: 2},
		{name: "thick club other species", species: "snorlax", item: "thick-club", stat: StatAttack, want: 1},
		{name: "metal powder", species: "ditto", item: "metal-powder", stat: StatDefense, want: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBattle(t, nil,
				[]*PokemonConfig{mon(tc.species, withItem(tc.item))},
				[]*PokemonConfig{mon("chansey")})
			p := b.Trainer1.Current()

			assert.Equal(t, tc.want, p.HeldItem.StatMultiplier(b, tc.stat))
			assert.Equal(t, int(float64(p.rawStat(tc.stat))*tc.want), p.EffectiveStat(b, tc.stat))
		})
	}
}

func TestItemSpeedMultipliers(t *testing.T) {
	testCases := []struct {
		name    string
		species string
		item    string
		want    float64
	}{
		{name: "no item", species: "snorlax", want: 1},
		{name: "choice scarf", species: "snorlax", item: "choice-scarf", want: 1.5},
		{name: "iron ball", species: "snorlax", item: "iron-ball", want: 0.5},
		{name: "power anklet", species: "snorlax", item: "power-anklet", want: 0.5},
		{name: "macho brace", species: "snorlax", item: "macho-brace", want: 0.5},
		{name: "quick powder ditto", species: "ditto", item: "quick-powder", want: 2},
		{name: "quick powder other species", species: "snorlax", item: "quick-powder", want: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBattle(t, nil,
				[]*PokemonConfig{mon(tc.species, withItem(tc.item), withAbility("thick-fat"))},
				[]*PokemonConfig{mon("chansey")})
			p := b.Trainer1.Current()

			assert.Equal(t, tc.want, p.HeldItem.SpeedMultiplier(b))
			assert.Equal(t, int(float64(p.rawStat(StatSpeed))*tc.want), p.EffectiveSpeed(b))
		})
	}
}

func TestExpertBelt(t *testing.T) {
	b := newTestBattle(t, nil,
		[]*PokemonConfig{mon("charizard", withItem("expert-belt"), withMoves("ember"))},
		[]*PokemonConfig{mon("venusaur")})
	charizard := b.Trainer1.Current()
	ember := charizard.Moves[0]

	assert.InDelta(t, 1.2, charizard.HeldItem.DamageMultiplier(b, ember, true), 1e-9)
	assert.Equal(t, 1.0, charizard.HeldItem.DamageMultiplier(b, ember, false))
}

func TestMetronomeBuff(t *testing.T) {
	var m Metronome
	assert.Equal(t, 1.0, m.Buff("tackle"))

	m.Use("tackle")
	assert.InDelta(t, 1.2, m.Buff("tackle"), 1e-9)
	m.Use("tackle")
	m.Use("tackle")
	assert.InDelta(t, 1.6, m.Buff("tackle"), 1e-9)
	assert.Equal(t, 1.0, m.Buff("surf"))

	for range 10 {
		m.Use("tackle")
	}
	assert.Equal(t, 2.0, m.Buff("tackle"))

	m.Use("surf")
	assert.InDelta(t, 1.2, m.Buff("surf"), 1e-9)
	m.Reset()
	assert.Equal(t, 1.0, m.Buff("surf"))
}

func TestItemDamageMultipliers(t *testing.T) {
	b := newTestBattle(t, nil,
		[]*PokemonConfig{mon("charizard", withItem("charcoal"), withMoves("ember", "tackle"))},
		[]*PokemonConfig{mon("venusaur", withItem("occa-berry"))})
	charizard, venusaur := b.Trainer1.Current(), b.Trainer2.Current()
	ember, tackle := charizard.Moves[0], charizard.Moves[1]

	assert.InDelta(t, 1.2, charizard.HeldItem.DamageMultiplier(b, ember, true), 1e-9)
	assert.Equal(t, 1.0, charizard.HeldItem.DamageMultiplier(b, tackle, false))

	mult, msg := venusaur.HeldItem.DefensiveMultiplier(b, ElementFire, false)
	assert.Equal(t, 1.0, mult, "not super effective")
	assert.Empty(t, msg)

	mult, msg = venusaur.HeldItem.DefensiveMultiplier(b, ElementFire, true)
	assert.Equal(t, 0.5, mult)
	assert.Equal(t, "Venusaur's Occa Berry weakened the attack!\n", msg)
	require.False(t, venusaur.HeldItem.HasItem())
}
