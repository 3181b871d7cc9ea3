package battle

import "fmt"

// Hit describes the attack that damaged a creature.
type Hit struct {
	Attacker       *Pokemon
	Move           *Move
	SuperEffective bool
}

// ActivateOnDamage lands damage from hit on the holder and runs the item
// reactions. A Focus Sash or Focus Band that holds on leaves the holder at
// 1 HP instead, and nothing else reacts.
func (h *HeldItem) ActivateOnDamage(b *Battle, damage int, hit Hit) string {
	if msg, held := h.holdOn(b, damage); held {
		return msg
	}
	msg := h.owner.Damage(b, damage, "")
	return msg + h.reactToHit(b, hit)
}

// holdOn survives a lethal hit taken at full HP.
func (h *HeldItem) holdOn(b *Battle, damage int) (string, bool) {
	p := h.owner
	if damage < p.HP || p.HP != p.MaxHP {
		return "", false
	}
	switch h.Get(b) {
	case "focus-sash":
		p.HP = 1
		h.consume(b)
		return fmt.Sprintf("%s held on with its Focus Sash!\n", p.Name()), true
	case "focus-band":
		if b.randint(1, 10) == 1 {
			p.HP = 1
			return fmt.Sprintf("%s held on with its Focus Band!\n", p.Name()), true
		}
	}
	return "", false
}

func (h *HeldItem) reactToHit(b *Battle, hit Hit) string {
	p := h.owner
	attacker, move := hit.Attacker, hit.Move
	if attacker == nil || move == nil {
		return ""
	}
	msg := ""

	if h.Is(b, "weakness-policy") && hit.SuperEffective && !p.Fainted() {
		msg += p.AppendStat(StatAttack, 2, StatChange{Attacker: attacker, Source: "its Weakness Policy"})
		msg += p.AppendStat(StatSpAtk, 2, StatChange{Attacker: attacker, Source: "its Weakness Policy"})
		h.consume(b)
	}

	if h.Is(b, "air-balloon") {
		msg += fmt.Sprintf("%s's Air Balloon popped!\n", p.Name())
		h.consume(b)
	}

	if h.Is(b, "rocky-helmet") && move.MakesContact(attacker) {
		msg += attacker.Damage(b, attacker.MaxHP/6, fmt.Sprintf("%s's Rocky Helmet", p.Name()))
	}

	if h.Is(b, "jaboca-berry") && move.Class() == DamageClassPhysical {
		msg += attacker.Damage(b, attacker.MaxHP/8, fmt.Sprintf("%s's Jaboca Berry", p.Name()))
		h.consume(b)
	}

	if h.Is(b, "rowap-berry") && move.Class() == DamageClassSpecial {
		msg += attacker.Damage(b, attacker.MaxHP/8, fmt.Sprintf("%s's Rowap Berry", p.Name()))
		h.consume(b)
	}

	if h.Is(b, "red-card") && move.MakesContact(attacker) && attacker.Substitute == 0 && attacker.Owner != nil {
		msg += fmt.Sprintf("%s was forced to switch by the Red Card!\n", attacker.Name())
		attacker.Owner.MidTurnRemove = true
		h.consume(b)
	}

	if h.Is(b, "eject-button") && p.Owner != nil {
		msg += fmt.Sprintf("%s is forced to switch by its Eject Button!\n", p.Name())
		p.Owner.MidTurnRemove = true
		h.consume(b)
	}

	return msg
}

// ActivateEndOfTurn runs the holder's end of turn item effects.
func (h *HeldItem) ActivateEndOfTurn(b *Battle) string {
	p := h.owner
	msg := ""

	switch item := h.Get(b); {
	case item == "leftovers":
		if !p.Fainted() && p.HP < p.MaxHP {
			msg += p.Heal(max(1, p.MaxHP/16), "its Leftovers")
		}
	case item == "black-sludge":
		if p.HasType(ElementPoison) {
			if !p.Fainted() && p.HP < p.MaxHP {
				msg += p.Heal(max(1, p.MaxHP/16), "its Black Sludge")
			}
		} else {
			msg += p.Damage(b, max(1, p.MaxHP/8), "its Black Sludge")
		}
	case item == "toxic-orb" && !p.NV.Poison():
		msg += p.NV.ApplyStatus(b, StatusBadPoison, StatusOptions{Attacker: p, Source: "its Toxic Orb"})
	case item == "flame-orb" && !p.NV.Burn():
		msg += p.NV.ApplyStatus(b, StatusBurn, StatusOptions{Attacker: p, Source: "its Flame Orb"})
	case item == "white-herb":
		restored := false
		for stat := StatAttack; stat < numStats; stat++ {
			if p.stages[stat] < 0 {
				p.stages[stat] = 0
				restored = true
			}
		}
		if restored {
			msg += fmt.Sprintf("%s's White Herb restored its stats!\n", p.Name())
			h.consume(b)
		}
	}

	if h.Is(b, "life-orb") && p.UsedDamagingMove && !p.Fainted() && p.Ability() != AbilityMagicGuard {
		msg += p.Damage(b, max(1, p.MaxHP/10), "Life Orb recoil")
	}

	return msg
}

// ActivateOnSwitchIn runs the holder's switch-in item effects.
func (h *HeldItem) ActivateOnSwitchIn(b *Battle) string {
	p := h.owner
	msg := ""

	if h.Is(b, "room-service") && b.TrickRoom.Active() {
		msg += p.AppendStat(StatSpeed, -1, StatChange{Attacker: p, Source: "its Room Service"})
		h.consume(b)
	}

	if h.Is(b, "booster-energy") && !p.BoosterEnergy {
		if ab := p.Ability(); ab == AbilityProtosynthesis || ab == AbilityQuarkDrive {
			msg += fmt.Sprintf("%s's Booster Energy activated its ability!\n", p.Name())
			p.BoosterEnergy = true
			h.consume(b)
		}
	}

	return msg
}

// ActivateOnMoveUse runs the holder's item effects for using move.
func (h *HeldItem) ActivateOnMoveUse(b *Battle, move *Move) string {
	if h.Is(b, "throat-spray") && move != nil && move.IsSound() {
		msg := h.owner.AppendStat(StatSpAtk, 1, StatChange{Attacker: h.owner, Source: "its Throat Spray"})
		h.consume(b)
		return msg
	}
	return ""
}
