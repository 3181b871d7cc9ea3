package battle

import (
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/pokeduel/internal/dex"
	"github.com/KirkDiggler/pokeduel/internal/errors"
)

const (
	// DefaultLevel is used when a config does not set one.
	DefaultLevel = 100

	maxStage = 6
	minStage = -6
)

// Stats are the computed, unmodified battle stats.
type Stats struct {
	HP      int
	Attack  int
	Defense int
	SpAtk   int
	SpDef   int
	Speed   int
}

func calcStats(base dex.BaseStats, level int) Stats {
	stat := func(b int) int { return (2*b+31)*level/100 + 5 }
	return Stats{
		HP:      (2*base.HP+31)*level/100 + level + 10,
		Attack:  stat(base.Attack),
		Defense: stat(base.Defense),
		SpAtk:   stat(base.SpAtk),
		SpDef:   stat(base.SpDef),
		Speed:   stat(base.Speed),
	}
}

// PokemonConfig describes a creature to materialise from reference data.
type PokemonConfig struct {
	ID             string
	Species        string
	Nickname       string
	Level          int
	Ability        string
	Item           string
	Moves          []string
	DislikedFlavor string
}

// Validate checks the config before any reference lookups happen.
func (c *PokemonConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("ID", c.ID, vb)
	errors.ValidateRequired("Species", c.Species, vb)
	if c.Level != 0 {
		errors.ValidateRange("Level", c.Level, 1, 100, vb)
	}
	if len(c.Moves) == 0 {
		vb.RequiredField("Moves")
	} else if len(c.Moves) > 4 {
		vb.Fieldf("Moves", "has %d moves, at most 4 allowed", len(c.Moves))
	}

	return vb.Build()
}

// Pokemon is one creature instance for the lifetime of a battle.
type Pokemon struct {
	ID       string
	Nickname string
	Level    int
	Owner    *Trainer

	species   *dex.Species
	form      *dex.Species
	formTypes []ElementType
	// typeOverride replaces the form types while set (Mimicry).
	typeOverride  []ElementType
	StartingTypes []ElementType

	HP    int
	MaxHP int
	stats Stats

	stages [numStats]int

	AbilityID string
	Moves     []*Move
	HeldItem  *HeldItem
	NV        *NonVolatileEffect

	// volatile conditions
	Confusion   ExpiringEffect
	Embargo     ExpiringEffect
	PerishSong  ExpiringEffect
	MagnetRise  ExpiringEffect
	Telekinesis ExpiringEffect
	HealBlock   ExpiringEffect
	Uproar      ExpiringEffect
	MindReader  ExpiringEffect
	Substitute  int
	LeechSeed   bool
	Ingrain     bool
	Nightmare   bool
	FocusEnergy bool
	Curse       bool
	AquaRing    bool
	PowerTrick  bool
	PowerShift  bool

	CorrosiveGas   bool
	DislikedFlavor string

	LansatBerryAte   bool
	MicleBerryAte    bool
	CustapBerryAte   bool
	AteBerry         bool
	LastBerry        *dex.Item
	CudChew          ExpiringEffect
	BoosterEnergy    bool
	UsedDamagingMove bool
	CanStillEvolve   bool

	Metronome  Metronome
	ChoiceMove *Move
	Locked     *LockedMove
}

// NewPokemon builds a creature at full HP from reference data.
func NewPokemon(store *dex.Store, cfg *PokemonConfig) (*Pokemon, error) {
	if store == nil {
		return nil, errors.InvalidArgument("reference store is required")
	}
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid pokemon config")
	}

	species, ok := store.Species(cfg.Species)
	if !ok {
		return nil, errors.NotFoundf("species %q not found", cfg.Species)
	}

	level := cfg.Level
	if level == 0 {
		level = DefaultLevel
	}

	ability := cfg.Ability
	if ability == "" && len(species.Abilities) > 0 {
		ability = species.Abilities[0]
	}
	if _, ok := store.Ability(ability); !ok {
		return nil, errors.NotFoundf("ability %q not found", ability)
	}

	p := &Pokemon{
		ID:             cfg.ID,
		Nickname:       cfg.Nickname,
		Level:          level,
		AbilityID:      ability,
		DislikedFlavor: cfg.DislikedFlavor,
		CanStillEvolve: species.CanEvolve,
	}
	if err := p.applyForm(species); err != nil {
		return nil, err
	}
	p.species = species
	p.StartingTypes = append([]ElementType(nil), p.formTypes...)
	p.stats = calcStats(species.Base, level)
	p.MaxHP = p.stats.HP
	p.HP = p.MaxHP

	for _, name := range cfg.Moves {
		data, ok := store.Move(name)
		if !ok {
			return nil, errors.NotFoundf("move %q not found", name)
		}
		m, err := NewMove(data)
		if err != nil {
			return nil, err
		}
		p.Moves = append(p.Moves, m)
	}

	var item *dex.Item
	if cfg.Item != "" {
		item, ok = store.Item(cfg.Item)
		if !ok {
			return nil, errors.NotFoundf("item %q not found", cfg.Item)
		}
	}
	p.HeldItem = NewHeldItem(item, p)
	p.NV = &NonVolatileEffect{pokemon: p}

	return p, nil
}

// GetID implements core.Entity.
func (p *Pokemon) GetID() string { return p.ID }

// GetType implements core.Entity.
func (p *Pokemon) GetType() string { return "pokemon" }

// Name is the nickname if set, otherwise the species name. Form changes
// do not rename a creature.
func (p *Pokemon) Name() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return p.species.Name
}

// SpeciesName is the base species name.
func (p *Pokemon) SpeciesName() string { return p.species.Name }

// FormName is the current form, e.g. "Castform-rainy".
func (p *Pokemon) FormName() string { return p.form.Name }

// FormIdentifier is the reference identifier of the current form.
func (p *Pokemon) FormIdentifier() string { return p.form.Identifier }

// DexNumber is the species number shared by all forms.
func (p *Pokemon) DexNumber() int { return p.species.ID }

// Types returns the current types: the ability override if one is set,
// otherwise the types of the current form.
func (p *Pokemon) Types() []ElementType {
	if p.typeOverride != nil {
		return p.typeOverride
	}
	return p.formTypes
}

// HasType reports whether e is one of the current types.
func (p *Pokemon) HasType(e ElementType) bool {
	return containsElement(p.Types(), e)
}

// SetTypeOverride replaces the current types until cleared with nil.
func (p *Pokemon) SetTypeOverride(types []ElementType) {
	if types == nil {
		p.typeOverride = nil
		return
	}
	p.typeOverride = append([]ElementType(nil), types...)
}

// SetForm switches to another form of the same species, looked up by name.
// It reports whether the form changed.
func (p *Pokemon) SetForm(b *Battle, name string) bool {
	form, ok := b.Dex.Species(name)
	if !ok || form.ID != p.species.ID {
		return false
	}
	if err := p.applyForm(form); err != nil {
		return false
	}
	p.typeOverride = nil
	return true
}

func (p *Pokemon) applyForm(form *dex.Species) error {
	types := make([]ElementType, 0, len(form.Types))
	for _, t := range form.Types {
		e, err := ParseElement(t)
		if err != nil {
			return errors.Wrapf(err, "species %s", form.Name)
		}
		types = append(types, e)
	}
	p.form = form
	p.formTypes = types
	return nil
}

// Ability returns the ability id.
func (p *Pokemon) Ability() string { return p.AbilityID }

// AbilityAgainst returns the ability as seen by attacker using move. Mold
// Breaker style abilities ignore the target's ability.
func (p *Pokemon) AbilityAgainst(attacker *Pokemon, move *Move) string {
	if attacker != nil && attacker != p && move != nil {
		switch attacker.Ability() {
		case AbilityMoldBreaker, AbilityTeravolt, AbilityTurboblaze:
			return ""
		}
	}
	return p.AbilityID
}

// Fainted reports whether the creature has no HP left.
func (p *Pokemon) Fainted() bool { return p.HP <= 0 }

// Stage returns the current stage of stat.
func (p *Pokemon) Stage(stat Stat) int { return p.stages[stat] }

// SetStage assigns a stage, clamped to -6..6.
func (p *Pokemon) SetStage(stat Stat, stage int) {
	p.stages[stat] = max(minStage, min(maxStage, stage))
}

// ResetStages zeroes every stage.
func (p *Pokemon) ResetStages() {
	p.stages = [numStats]int{}
}

func (p *Pokemon) rawStat(stat Stat) int {
	switch stat {
	case StatAttack:
		return p.stats.Attack
	case StatDefense:
		return p.stats.Defense
	case StatSpAtk:
		return p.stats.SpAtk
	case StatSpDef:
		return p.stats.SpDef
	case StatSpeed:
		return p.stats.Speed
	}
	return 0
}

func stageMultiplier(stage int) float64 {
	if stage >= 0 {
		return float64(2+stage) / 2
	}
	return 2 / float64(2-stage)
}

func accuracyMultiplier(stage int) float64 {
	stage = max(minStage, min(maxStage, stage))
	if stage >= 0 {
		return float64(3+stage) / 3
	}
	return 3 / float64(3-stage)
}

// EffectiveStat applies stages and held item multipliers to a base stat.
func (p *Pokemon) EffectiveStat(b *Battle, stat Stat) int {
	return p.statAtStage(b, stat, p.stages[stat])
}

func (p *Pokemon) statAtStage(b *Battle, stat Stat, stage int) int {
	v := float64(p.rawStat(stat)) * stageMultiplier(stage) * p.HeldItem.StatMultiplier(b, stat)
	return max(1, int(v))
}

// EffectiveSpeed is the speed used for turn order.
func (p *Pokemon) EffectiveSpeed(b *Battle) int {
	speed := float64(p.rawStat(StatSpeed)) * stageMultiplier(p.stages[StatSpeed])
	speed *= p.HeldItem.SpeedMultiplier(b)

	weather := b.Weather.Get(b)
	switch p.Ability() {
	case AbilitySwiftSwim:
		if weather.IsRain() {
			speed *= 2
		}
	case AbilityChlorophyll:
		if weather.IsSun() {
			speed *= 2
		}
	case AbilitySandRush:
		if weather == WeatherSandstorm {
			speed *= 2
		}
	case AbilitySlushRush:
		if weather == WeatherHail {
			speed *= 2
		}
	}

	if p.NV.Paralysis() {
		if p.Ability() == AbilityQuickFeet {
			speed *= 1.5
		} else {
			speed *= 0.5
		}
	}
	return max(1, int(speed))
}

// Grounded reports whether ground-based effects reach the creature.
func (p *Pokemon) Grounded(b *Battle, attacker *Pokemon, move *Move) bool {
	if p.HeldItem.Get(b) == "iron-ball" || p.Ingrain {
		return true
	}
	if p.HasType(ElementFlying) {
		return false
	}
	if p.AbilityAgainst(attacker, move) == AbilityLevitate {
		return false
	}
	if p.HeldItem.Get(b) == "air-balloon" {
		return false
	}
	if p.MagnetRise.Active() || p.Telekinesis.Active() {
		return false
	}
	return true
}

// Damage removes up to amount HP and narrates it. A creature that survives
// may eat a pinch berry.
func (p *Pokemon) Damage(b *Battle, amount int, source string) string {
	if amount <= 0 || p.Fainted() {
		return ""
	}
	amount = min(amount, p.HP)
	p.HP -= amount

	msg := fmt.Sprintf("%s took %d damage%s!\n", p.Name(), amount, from(source))
	if p.Fainted() {
		msg += fmt.Sprintf("%s fainted!\n", p.Name())
		b.emit(EventPokemonFainted, p, nil, map[string]any{KeySpecies: p.SpeciesName()})
		return msg
	}
	if p.HeldItem.ShouldEatBerryDamage(b, b.Opponent(p)) {
		msg += p.HeldItem.EatBerry(b, EatOptions{})
	}
	return msg
}

// Heal restores up to amount HP and narrates it.
func (p *Pokemon) Heal(amount int, source string) string {
	if amount <= 0 || p.Fainted() || p.HealBlock.Active() {
		return ""
	}
	amount = min(amount, p.MaxHP-p.HP)
	if amount == 0 {
		return ""
	}
	p.HP += amount
	return fmt.Sprintf("%s healed %d HP%s!\n", p.Name(), amount, from(source))
}

// TakeHit applies move damage from attacker, running the defender's held
// item reactions.
func (p *Pokemon) TakeHit(b *Battle, amount int, hit Hit) string {
	return p.HeldItem.ActivateOnDamage(b, amount, hit)
}

// StatChange carries the context of a stage change.
type StatChange struct {
	Attacker *Pokemon
	Move     *Move
	Source   string
}

// AppendStat changes stat by delta stages and narrates the result.
func (p *Pokemon) AppendStat(stat Stat, delta int, change StatChange) string {
	if delta == 0 || p.Fainted() {
		return ""
	}
	switch p.AbilityAgainst(change.Attacker, change.Move) {
	case AbilitySimple:
		delta *= 2
	case AbilityContrary:
		delta = -delta
	}

	if delta < 0 && change.Attacker != nil && change.Attacker != p {
		switch ab := p.AbilityAgainst(change.Attacker, change.Move); ab {
		case AbilityClearBody, AbilityWhiteSmoke, AbilityFullMetalBody:
			return fmt.Sprintf("%s's %s prevents its stats from being lowered!\n", p.Name(), prettyName(ab))
		}
	}

	current := p.stages[stat]
	p.SetStage(stat, current+delta)
	if p.stages[stat] == current {
		if delta > 0 {
			return fmt.Sprintf("%s's %s won't go any higher!\n", p.Name(), stat.Pretty())
		}
		return fmt.Sprintf("%s's %s won't go any lower!\n", p.Name(), stat.Pretty())
	}

	var word string
	switch {
	case delta >= 3:
		word = "rose drastically"
	case delta == 2:
		word = "rose sharply"
	case delta == 1:
		word = "rose"
	case delta == -1:
		word = "fell"
	case delta == -2:
		word = "harshly fell"
	default:
		word = "severely fell"
	}
	return fmt.Sprintf("%s's %s %s%s!\n", p.Name(), stat.Pretty(), word, from(change.Source))
}

// Confuse confuses the creature for 2-5 turns.
func (p *Pokemon) Confuse(b *Battle, attacker *Pokemon, move *Move, source string) string {
	if p.Fainted() || p.Confusion.Active() {
		return ""
	}
	if p.AbilityAgainst(attacker, move) == AbilityOwnTempo {
		return fmt.Sprintf("%s's own tempo prevents it from getting confused!\n", p.Name())
	}
	if attacker != p && p.Owner != nil && p.Owner.Safeguard.Active() &&
		(attacker == nil || attacker.Ability() != AbilityInfiltrator) {
		return fmt.Sprintf("%s's safeguard protects it from being confused!\n", p.Name())
	}
	if b.Terrain.Get() == TerrainMisty && p.Grounded(b, attacker, move) {
		return fmt.Sprintf("The misty terrain protects %s from being confused!\n", p.Name())
	}

	p.Confusion.SetTurns(b.randint(2, 5))
	msg := fmt.Sprintf("%s became confused%s!\n", p.Name(), from(source))
	if p.HeldItem.ShouldEatBerryStatus(b, attacker) {
		msg += p.HeldItem.EatBerry(b, EatOptions{Attacker: attacker, Move: move})
	}
	return msg
}

// clearVolatile drops the conditions that do not survive switching out.
func (p *Pokemon) clearVolatile() {
	p.ResetStages()
	p.Confusion.SetTurns(0)
	p.Embargo.SetTurns(0)
	p.PerishSong.SetTurns(0)
	p.MagnetRise.SetTurns(0)
	p.Telekinesis.SetTurns(0)
	p.HealBlock.SetTurns(0)
	p.Uproar.SetTurns(0)
	p.MindReader.SetTurns(0)
	p.Substitute = 0
	p.LeechSeed = false
	p.Ingrain = false
	p.Nightmare = false
	p.FocusEnergy = false
	p.Curse = false
	p.AquaRing = false
	p.PowerTrick = false
	p.PowerShift = false
	p.ChoiceMove = nil
	p.Locked = nil
	p.Metronome.Reset()
	p.typeOverride = nil
	if p.form != p.species {
		if err := p.applyForm(p.species); err != nil {
			slog.Warn("Failed to restore base form",
				"pokemon_id", p.ID,
				"form", p.form.Name,
				"error", err,
			)
		}
	}
}
