package battle

import "fmt"

// NonVolatileEffect is a creature's single persistent status slot.
type NonVolatileEffect struct {
	pokemon *Pokemon
	current Status

	SleepTimer        ExpiringEffect
	BadlyPoisonedTurn int
}

// StatusOptions describes where a status comes from.
type StatusOptions struct {
	Attacker *Pokemon
	Move     *Move
	// Turns fixes the sleep duration; zero rolls 2-4 turns.
	Turns int
	// Force replaces an existing status.
	Force  bool
	Source string
}

// Current returns the status in the slot.
func (n *NonVolatileEffect) Current() Status { return n.current }

func (n *NonVolatileEffect) Burn() bool      { return n.current == StatusBurn }
func (n *NonVolatileEffect) Paralysis() bool { return n.current == StatusParalysis }
func (n *NonVolatileEffect) Freeze() bool    { return n.current == StatusFreeze }

// Sleep is also true for Comatose creatures.
func (n *NonVolatileEffect) Sleep() bool {
	return n.current == StatusSleep || n.pokemon.Ability() == AbilityComatose
}

// Poison covers regular and bad poison.
func (n *NonVolatileEffect) Poison() bool {
	return n.current == StatusPoison || n.current == StatusBadPoison
}

// Reset clears the status and its counters.
func (n *NonVolatileEffect) Reset() {
	n.current = StatusNone
	n.BadlyPoisonedTurn = 0
	n.SleepTimer.SetTurns(0)
	n.pokemon.Nightmare = false
}

// ApplyStatus tries to inflict status. Each guard that blocks it narrates
// why and leaves the slot untouched.
func (n *NonVolatileEffect) ApplyStatus(b *Battle, status Status, opts StatusOptions) string {
	p := n.pokemon
	name := p.Name()
	attacker, move := opts.Attacker, opts.Move
	ability := p.AbilityAgainst(attacker, move)
	source := from(opts.Source)

	if status == StatusNone {
		return ""
	}
	if (n.current != StatusNone && !opts.Force) || ability == AbilityComatose {
		return fmt.Sprintf("%s already has a status, it can't get %s too!\n", name, status)
	}
	if ability == AbilityPurifyingSalt {
		return fmt.Sprintf("%s's purifying salt protects it from being inflicted with %s!\n", name, status)
	}
	if ability == AbilityLeafGuard && b.Weather.Get(b).IsSun() {
		return fmt.Sprintf("%s's leaf guard protects it from being inflicted with %s!\n", name, status)
	}
	if p.Substitute > 0 && attacker != p && (move == nil || move.AffectedBySubstitute()) {
		return fmt.Sprintf("%s's substitute protects it from being inflicted with %s!\n", name, status)
	}
	if p.Owner != nil && p.Owner.Safeguard.Active() && attacker != p &&
		(attacker == nil || attacker.Ability() != AbilityInfiltrator) {
		return fmt.Sprintf("%s's safeguard protects it from being inflicted with %s!\n", name, status)
	}
	if p.Grounded(b, attacker, move) && b.Terrain.Get() == TerrainMisty {
		return fmt.Sprintf("The misty terrain protects %s from being inflicted with %s!\n", name, status)
	}
	if ability == AbilityFlowerVeil && p.HasType(ElementGrass) {
		return fmt.Sprintf("%s's flower veil protects it from being inflicted with %s!\n", name, status)
	}
	if p.SpeciesName() == "Minior" {
		return "Minior's hard shell protects it from status effects!\n"
	}

	msg := ""
	switch status {
	case StatusBurn:
		if p.HasType(ElementFire) {
			return fmt.Sprintf("%s is a fire type and can't be burned!\n", name)
		}
		if ability == AbilityWaterVeil || ability == AbilityWaterBubble {
			return fmt.Sprintf("%s's %s prevents it from getting burned!\n", name, prettyName(ability))
		}
		msg += fmt.Sprintf("%s was burned%s!\n", name, source)

	case StatusSleep:
		switch ability {
		case AbilityInsomnia, AbilityVitalSpirit, AbilitySweetVeil:
			return fmt.Sprintf("%s's %s keeps it awake!\n", name, prettyName(ability))
		}
		if p.Grounded(b, attacker, move) && b.Terrain.Get() == TerrainElectric {
			return fmt.Sprintf("The terrain is too electric for %s to fall asleep!\n", name)
		}
		for _, active := range b.Actives() {
			if active != nil && active.Uproar.Active() {
				return fmt.Sprintf("An uproar keeps %s from falling asleep!\n", name)
			}
		}
		turns := opts.Turns
		if turns == 0 {
			turns = b.randint(2, 4)
		}
		if ability == AbilityEarlyBird {
			turns = max(1, turns/2)
		}
		n.SleepTimer.SetTurns(turns)
		msg += fmt.Sprintf("%s fell asleep%s!\n", name, source)

	case StatusPoison, StatusBadPoison:
		if attacker == nil || attacker.Ability() != AbilityCorrosion {
			if p.HasType(ElementSteel) {
				return fmt.Sprintf("%s is a steel type and can't be poisoned!\n", name)
			}
			if p.HasType(ElementPoison) {
				return fmt.Sprintf("%s is a poison type and can't be poisoned!\n", name)
			}
		}
		if ability == AbilityImmunity || ability == AbilityPastelVeil {
			return fmt.Sprintf("%s's %s keeps it from being poisoned!\n", name, prettyName(ability))
		}
		bad := ""
		if status == StatusBadPoison {
			bad = " badly"
		}
		msg += fmt.Sprintf("%s was%s poisoned%s!\n", name, bad, source)

	case StatusParalysis:
		if p.HasType(ElementElectric) {
			return fmt.Sprintf("%s is an electric type and can't be paralyzed!\n", name)
		}
		if ability == AbilityLimber {
			return fmt.Sprintf("%s's limber keeps it from being paralyzed!\n", name)
		}
		msg += fmt.Sprintf("%s was paralyzed%s!\n", name, source)

	case StatusFreeze:
		if p.HasType(ElementIce) {
			return fmt.Sprintf("%s is an ice type and can't be frozen!\n", name)
		}
		if ability == AbilityMagmaArmor {
			return fmt.Sprintf("%s's magma armor keeps it from being frozen!\n", name)
		}
		if b.Weather.Get(b).IsSun() {
			return fmt.Sprintf("It's too sunny to freeze %s!\n", name)
		}
		msg += fmt.Sprintf("%s was frozen solid%s!\n", name, source)
	}

	if status != StatusSleep {
		n.SleepTimer.SetTurns(0)
	}
	n.current = status
	b.emit(EventStatusApplied, p, entityOf(attacker), map[string]any{KeyStatus: status.String()})

	if n.Poison() && move != nil && attacker != nil && attacker.Ability() == AbilityPoisonPuppeteer {
		msg += p.Confuse(b, attacker, move, fmt.Sprintf("%s's poison puppeteer", attacker.Name()))
	}

	if ability == AbilitySynchronize && attacker != nil && attacker != p {
		msg += attacker.NV.ApplyStatus(b, status, StatusOptions{
			Attacker: p,
			Source:   fmt.Sprintf("%s's synchronize", name),
		})
	}

	if p.HeldItem.ShouldEatBerryStatus(b, attacker) {
		msg += p.HeldItem.EatBerry(b, EatOptions{Attacker: attacker, Move: move})
	}

	return msg
}

// NextTurn ticks the status at the end of a turn: cures first, then damage
// or healing.
func (n *NonVolatileEffect) NextTurn(b *Battle) string {
	if n.current == StatusNone {
		return ""
	}
	p := n.pokemon
	if n.current == StatusBadPoison {
		n.BadlyPoisonedTurn++
	}

	if p.Ability() == AbilityHydration && b.Weather.Get(b).IsRain() {
		removed := n.current
		n.Reset()
		return fmt.Sprintf("%s's hydration cured its %s!\n", p.Name(), removed)
	}
	if p.Ability() == AbilityShedSkin && b.randint(0, 2) == 0 {
		removed := n.current
		n.Reset()
		return fmt.Sprintf("%s's shed skin cured its %s!\n", p.Name(), removed)
	}

	switch n.current {
	case StatusBurn:
		damage := max(1, p.MaxHP/16)
		if p.Ability() == AbilityHeatproof {
			damage /= 2
		}
		return p.Damage(b, damage, "its burn")
	case StatusBadPoison:
		if p.Ability() == AbilityPoisonHeal {
			return p.Heal(p.MaxHP/8, "its poison heal")
		}
		damage := max(1, (p.MaxHP/16)*min(15, n.BadlyPoisonedTurn))
		return p.Damage(b, damage, "its bad poison")
	case StatusPoison:
		if p.Ability() == AbilityPoisonHeal {
			return p.Heal(p.MaxHP/8, "its poison heal")
		}
		return p.Damage(b, max(1, p.MaxHP/8), "its poison")
	case StatusSleep:
		if p.Nightmare {
			return p.Damage(b, p.MaxHP/4, "its nightmare")
		}
	}
	return ""
}
