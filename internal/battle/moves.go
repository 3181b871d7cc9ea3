package battle

import (
	"fmt"

	"github.com/KirkDiggler/pokeduel/internal/errors"
)

const butItFailed = "But it failed!\n"

// moveEffect applies a move's effect after any damage. user and target may
// be the same creature for self-targeting moves.
type moveEffect func(b *Battle, user, target *Pokemon, m *Move) (string, error)

// moveEffects is keyed by the reference data effect id.
var moveEffects = map[string]moveEffect{
	"ailment":       effectAilment,
	"stat":          effectStat,
	"weather":       effectWeather,
	"terrain":       effectTerrain,
	"trick-room":    effectTrickRoom,
	"magic-room":    effectMagicRoom,
	"safeguard":     effectSafeguard,
	"wish":          effectWish,
	"baton-pass":    effectBatonPass,
	"knock-off":     effectKnockOff,
	"eat-berry":     effectEatBerry,
	"swap-items":    effectSwapItems,
	"recycle":       effectRecycle,
	"leech-seed":    effectLeechSeed,
	"substitute":    effectSubstitute,
	"nightmare":     effectNightmare,
	"heal":          effectHeal,
	"rest":          effectRest,
	"uproar":        effectUproar,
	"magnet-rise":   effectMagnetRise,
	"embargo":       effectEmbargo,
	"heal-block":    effectHealBlock,
	"corrosive-gas": effectCorrosiveGas,
	"focus-energy":  effectFocusEnergy,
	"ingrain":       effectIngrain,
	"aqua-ring":     effectAquaRing,
	"perish-song":   effectPerishSong,
}

// canAct resolves the conditions that can stop a creature from moving.
func (b *Battle) canAct(p *Pokemon) (string, bool) {
	name := p.Name()
	switch p.NV.Current() {
	case StatusSleep:
		if !p.NV.SleepTimer.NextTurn() {
			return fmt.Sprintf("%s is fast asleep!\n", name), false
		}
		p.NV.Reset()
		msg, ok := b.confusionCheck(p)
		return fmt.Sprintf("%s woke up!\n", name) + msg, ok
	case StatusFreeze:
		if b.randint(1, 5) != 1 {
			return fmt.Sprintf("%s is frozen solid!\n", name), false
		}
		p.NV.Reset()
		msg, ok := b.confusionCheck(p)
		return fmt.Sprintf("%s thawed out!\n", name) + msg, ok
	case StatusParalysis:
		if b.randint(1, 4) == 1 {
			return fmt.Sprintf("%s is paralyzed! It can't move!\n", name), false
		}
	}
	return b.confusionCheck(p)
}

func (b *Battle) confusionCheck(p *Pokemon) (string, bool) {
	if !p.Confusion.Active() {
		return "", true
	}
	if p.Confusion.NextTurn() {
		return fmt.Sprintf("%s snapped out of its confusion!\n", p.Name()), true
	}
	msg := fmt.Sprintf("%s is confused!\n", p.Name())
	if b.randint(1, 3) == 1 {
		msg += "It hurt itself in its confusion!\n"
		msg += p.Damage(b, b.confusionDamage(p), "")
		return msg, false
	}
	return msg, true
}

// useMove resolves user using m on target. Errors abort the move; effects
// already applied stay applied.
func (b *Battle) useMove(user, target *Pokemon, m *Move) (string, error) {
	msg, ok := b.canAct(user)
	if !ok {
		user.Metronome.Reset()
		return msg, nil
	}

	locked := user.Locked != nil && user.Locked.Move == m
	if !locked {
		if m.PP <= 0 {
			user.Metronome.Reset()
			return msg + fmt.Sprintf("%s has no PP left for %s!\n", user.Name(), m.Name()), nil
		}
		m.PP--
		if target != nil && target != user && target.Ability() == AbilityPressure && m.PP > 0 {
			m.PP--
		}
	}

	msg += fmt.Sprintf("%s used %s!\n", user.Name(), m.Name())
	msg += user.HeldItem.ActivateOnMoveUse(b, m)
	user.Metronome.Use(m.Identifier())
	if user.ChoiceMove == nil {
		switch user.HeldItem.Get(b) {
		case "choice-band", "choice-specs", "choice-scarf":
			user.ChoiceMove = m
		}
	}
	defer b.advanceLock(user)

	aimed := m.IsDamaging() || (m.Data().StatTarget != "self" && m.Accuracy() > 0)
	if aimed && (target == nil || target.Fainted()) {
		user.Metronome.Reset()
		return msg + butItFailed, nil
	}
	if aimed && m.Accuracy() > 0 && !b.hits(user, target, m) {
		user.Metronome.Reset()
		return msg + fmt.Sprintf("%s's attack missed!\n", user.Name()), nil
	}

	if m.IsDamaging() {
		res := b.calculateDamage(user, target, m)
		msg += res.msg
		if res.effectiveness == 0 {
			if res.msg == "" {
				msg += effectivenessMessage(0, target)
			}
			user.Metronome.Reset()
			return msg, nil
		}
		if target.Substitute > 0 && m.AffectedBySubstitute() {
			dealt := min(res.damage, target.Substitute)
			target.Substitute -= dealt
			msg += fmt.Sprintf("The substitute took damage for %s!\n", target.Name())
			if target.Substitute == 0 {
				msg += fmt.Sprintf("%s's substitute faded!\n", target.Name())
			}
		} else {
			if res.critical {
				msg += "A critical hit!\n"
			}
			msg += effectivenessMessage(res.effectiveness, target)
			msg += target.TakeHit(b, res.damage, Hit{
				Attacker:       user,
				Move:           m,
				SuperEffective: res.effectiveness > 1,
			})
		}
		user.UsedDamagingMove = true
	}

	effect := m.Data().Effect
	if effect == "" {
		return msg, nil
	}
	apply, ok := moveEffects[effect]
	if !ok {
		return msg, errors.InvalidArgumentf("unknown move effect %q", effect).WithMeta("move", m.Identifier())
	}
	if m.IsDamaging() && m.Data().EffectChance > 0 && !b.chance(m.Data().EffectChance) {
		return msg, nil
	}
	out, err := apply(b, user, target, m)
	if err != nil {
		return msg, errors.Wrapf(err, "%s failed", m.Name())
	}
	return msg + out, nil
}

// hits rolls accuracy for a move aimed at target.
func (b *Battle) hits(user, target *Pokemon, m *Move) bool {
	if user.MindReader.Active() {
		return true
	}
	acc := float64(m.Accuracy()) * accuracyMultiplier(user.Stage(StatAccuracy)-target.Stage(StatEvasion))
	if user.MicleBerryAte {
		acc *= 1.2
		user.MicleBerryAte = false
	}
	return b.randint(1, 100) <= int(acc)
}

func (b *Battle) advanceLock(p *Pokemon) {
	if p.Locked != nil && p.Locked.NextTurn() {
		p.Locked = nil
	}
}

func effectAilment(b *Battle, user, target *Pokemon, m *Move) (string, error) {
	if target == nil || target.Fainted() {
		return "", nil
	}
	ailment := m.Data().Ailment
	if ailment == "confusion" {
		msg := target.Confuse(b, user, m, "")
		if msg == "" && !m.IsDamaging() {
			return butItFailed, nil
		}
		return msg, nil
	}
	if !m.IsDamaging() && target.Substitute > 0 && m.AffectedBySubstitute() {
		return butItFailed, nil
	}
	status, err := ParseStatus(ailment)
	if err != nil {
		return "", err
	}
	if m.IsDamaging() && target.NV.Current() != StatusNone {
		return "", nil
	}
	return target.NV.ApplyStatus(b, status, StatusOptions{Attacker: user, Move: m}), nil
}

func effectStat(b *Battle, user, target *Pokemon, m *Move) (string, error) {
	recipient := target
	if m.Data().StatTarget == "self" {
		recipient = user
	}
	if recipient == nil || recipient.Fainted() {
		return "", nil
	}
	if recipient != user && recipient.Substitute > 0 && m.AffectedBySubstitute() && !m.IsDamaging() {
		return butItFailed, nil
	}
	msg := ""
	for _, change := range m.Data().StatChanges {
		stat, err := ParseStat(change.Stat)
		if err != nil {
			return msg, err
		}
		msg += recipient.AppendStat(stat, change.Change, StatChange{Attacker: user, Move: m})
	}
	return msg, nil
}

func effectWeather(b *Battle, user, _ *Pokemon, m *Move) (string, error) {
	kind, err := ParseWeather(m.Data().Weather)
	if err != nil {
		return "", err
	}
	if kind == WeatherNone {
		return "", errors.InvalidArgumentf("move %s sets no weather", m.Identifier())
	}
	msg := b.Weather.Set(b, kind, user)
	if msg == "" {
		return butItFailed, nil
	}
	return msg, nil
}

func effectTerrain(b *Battle, user, _ *Pokemon, m *Move) (string, error) {
	kind, err := ParseTerrain(m.Data().Terrain)
	if err != nil {
		return "", err
	}
	if kind == TerrainNone {
		return "", errors.InvalidArgumentf("move %s sets no terrain", m.Identifier())
	}
	return b.Terrain.Set(b, kind, user), nil
}

func effectTrickRoom(b *Battle, user, _ *Pokemon, _ *Move) (string, error) {
	if b.TrickRoom.Active() {
		b.TrickRoom.SetTurns(0)
		return "The twisted dimensions returned to normal!\n", nil
	}
	b.TrickRoom.SetTurns(fieldTurns)
	return fmt.Sprintf("%s twisted the dimensions!\n", user.Name()), nil
}

func effectMagicRoom(b *Battle, user, _ *Pokemon, _ *Move) (string, error) {
	if b.MagicRoom.Active() {
		b.MagicRoom.SetTurns(0)
		return "The area returned to normal!\n", nil
	}
	b.MagicRoom.SetTurns(fieldTurns)
	return fmt.Sprintf("%s created a bizarre area in which items lose their effects!\n", user.Name()), nil
}

func effectSafeguard(_ *Battle, user, _ *Pokemon, _ *Move) (string, error) {
	if user.Owner.Safeguard.Active() {
		return butItFailed, nil
	}
	user.Owner.Safeguard.SetTurns(fieldTurns)
	return fmt.Sprintf("%s's team became cloaked in a mystical veil!\n", user.Owner.Name), nil
}

func effectWish(_ *Battle, user, _ *Pokemon, _ *Move) (string, error) {
	if user.Owner.Wish.Active() {
		return butItFailed, nil
	}
	user.Owner.Wish.Set(user.MaxHP / 2)
	return fmt.Sprintf("%s made a wish!\n", user.Name()), nil
}

func effectBatonPass(_ *Battle, user, _ *Pokemon, _ *Move) (string, error) {
	if user.Owner.NextHealthy() < 0 {
		return butItFailed, nil
	}
	user.Owner.BatonPass = NewBatonPass(user)
	user.Owner.MidTurnRemove = true
	return fmt.Sprintf("%s is passing the baton!\n", user.Name()), nil
}

func effectKnockOff(b *Battle, user, target *Pokemon, _ *Move) (string, error) {
	if target == nil || user.Fainted() || !target.HeldItem.HasItem() || !target.HeldItem.CanRemove() {
		return "", nil
	}
	item := target.HeldItem.Name()
	if err := target.HeldItem.Remove(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s knocked off %s's %s!\n", user.Name(), target.Name(), prettyName(item)), nil
}

func effectEatBerry(b *Battle, user, target *Pokemon, m *Move) (string, error) {
	if target == nil || user.Fainted() || !target.HeldItem.IsBerry(b) {
		return "", nil
	}
	return target.HeldItem.EatBerry(b, EatOptions{Consumer: user, Attacker: user, Move: m}), nil
}

func effectSwapItems(_ *Battle, user, target *Pokemon, _ *Move) (string, error) {
	if target == nil || (!user.HeldItem.HasItem() && !target.HeldItem.HasItem()) {
		return butItFailed, nil
	}
	if err := user.HeldItem.Swap(target.HeldItem); err != nil {
		return "", err
	}
	msg := fmt.Sprintf("%s switched items with its target!\n", user.Name())
	if name := user.HeldItem.Name(); name != "" {
		msg += fmt.Sprintf("%s obtained %s!\n", user.Name(), prettyName(name))
	}
	if name := target.HeldItem.Name(); name != "" {
		msg += fmt.Sprintf("%s obtained %s!\n", target.Name(), prettyName(name))
	}
	return msg, nil
}

func effectRecycle(_ *Battle, user, _ *Pokemon, _ *Move) (string, error) {
	if user.HeldItem.HasItem() || user.HeldItem.LastUsed == nil {
		return butItFailed, nil
	}
	user.HeldItem.Recover(user.HeldItem)
	return fmt.Sprintf("%s found one %s!\n", user.Name(), prettyName(user.HeldItem.Name())), nil
}

func effectLeechSeed(_ *Battle, _, target *Pokemon, _ *Move) (string, error) {
	switch {
	case target.HasType(ElementGrass):
		return effectivenessMessage(0, target), nil
	case target.LeechSeed:
		return fmt.Sprintf("%s is already seeded!\n", target.Name()), nil
	case target.Substitute > 0:
		return butItFailed, nil
	}
	target.LeechSeed = true
	return fmt.Sprintf("%s was seeded!\n", target.Name()), nil
}

func effectSubstitute(_ *Battle, user, _ *Pokemon, _ *Move) (string, error) {
	cost := user.MaxHP / 4
	switch {
	case user.Substitute > 0:
		return fmt.Sprintf("%s already has a substitute!\n", user.Name()), nil
	case user.HP <= cost:
		return fmt.Sprintf("%s is too weak to make a substitute!\n", user.Name()), nil
	}
	user.HP -= cost
	user.Substitute = cost
	return fmt.Sprintf("%s put in a substitute!\n", user.Name()), nil
}

func effectNightmare(_ *Battle, _, target *Pokemon, _ *Move) (string, error) {
	if target.NV.Current() != StatusSleep || target.Nightmare {
		return butItFailed, nil
	}
	target.Nightmare = true
	return fmt.Sprintf("%s began having a nightmare!\n", target.Name()), nil
}

func effectHeal(_ *Battle, user, _ *Pokemon, _ *Move) (string, error) {
	msg := user.Heal(user.MaxHP/2, "")
	if msg == "" {
		return fmt.Sprintf("%s's HP is full!\n", user.Name()), nil
	}
	return msg, nil
}

func effectRest(b *Battle, user, _ *Pokemon, _ *Move) (string, error) {
	if user.HP == user.MaxHP || user.NV.Current() == StatusSleep {
		return butItFailed, nil
	}
	msg := user.NV.ApplyStatus(b, StatusSleep, StatusOptions{Attacker: user, Turns: 2, Force: true})
	if user.NV.Current() == StatusSleep {
		user.HP = user.MaxHP
		msg += fmt.Sprintf("%s slept and became healthy!\n", user.Name())
	}
	return msg, nil
}

func effectUproar(_ *Battle, user, _ *Pokemon, m *Move) (string, error) {
	if user.Uproar.Active() {
		return "", nil
	}
	user.Uproar.SetTurns(3)
	user.Locked = NewLockedMove(m, 3)
	return fmt.Sprintf("%s caused an uproar!\n", user.Name()), nil
}

func effectMagnetRise(_ *Battle, user, _ *Pokemon, _ *Move) (string, error) {
	if user.MagnetRise.Active() || user.Ingrain {
		return butItFailed, nil
	}
	user.MagnetRise.SetTurns(fieldTurns)
	return fmt.Sprintf("%s levitated with electromagnetism!\n", user.Name()), nil
}

func effectEmbargo(_ *Battle, _, target *Pokemon, _ *Move) (string, error) {
	if target.Embargo.Active() {
		return butItFailed, nil
	}
	target.Embargo.SetTurns(fieldTurns)
	return fmt.Sprintf("%s can't use items anymore!\n", target.Name()), nil
}

func effectHealBlock(_ *Battle, _, target *Pokemon, _ *Move) (string, error) {
	if target.HealBlock.Active() {
		return butItFailed, nil
	}
	target.HealBlock.SetTurns(fieldTurns)
	return fmt.Sprintf("%s was prevented from healing!\n", target.Name()), nil
}

func effectCorrosiveGas(_ *Battle, user, target *Pokemon, _ *Move) (string, error) {
	if target.CorrosiveGas || !target.HeldItem.HasItem() || !target.HeldItem.CanRemove() {
		return butItFailed, nil
	}
	target.CorrosiveGas = true
	return fmt.Sprintf("%s corroded %s's %s!\n", user.Name(), target.Name(), prettyName(target.HeldItem.Name())), nil
}

func effectFocusEnergy(_ *Battle, user, _ *Pokemon, _ *Move) (string, error) {
	if user.FocusEnergy {
		return butItFailed, nil
	}
	user.FocusEnergy = true
	return fmt.Sprintf("%s is getting pumped!\n", user.Name()), nil
}

func effectIngrain(_ *Battle, user, _ *Pokemon, _ *Move) (string, error) {
	if user.Ingrain {
		return butItFailed, nil
	}
	user.Ingrain = true
	return fmt.Sprintf("%s planted its roots!\n", user.Name()), nil
}

func effectAquaRing(_ *Battle, user, _ *Pokemon, _ *Move) (string, error) {
	if user.AquaRing {
		return butItFailed, nil
	}
	user.AquaRing = true
	return fmt.Sprintf("%s surrounded itself with a veil of water!\n", user.Name()), nil
}

func effectPerishSong(b *Battle, _, _ *Pokemon, _ *Move) (string, error) {
	msg := "All creatures hearing the song will faint in three turns!\n"
	for _, p := range b.Actives() {
		if p == nil || p.Fainted() || p.PerishSong.Active() || p.Ability() == AbilitySoundproof {
			continue
		}
		p.PerishSong.SetTurns(4)
	}
	return msg, nil
}
