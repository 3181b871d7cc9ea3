package battle

import (
	"fmt"
)

// pinchBerries are eaten at a quarter of max HP or less.
var pinchBerries = map[string]bool{
	"figy-berry": true, "wiki-berry": true, "mago-berry": true, "aguav-berry": true, "iapapa-berry": true,
	"apicot-berry": true, "ganlon-berry": true, "lansat-berry": true, "liechi-berry": true,
	"micle-berry": true, "petaya-berry": true, "salac-berry": true, "starf-berry": true,
	"oran-berry": true, "leppa-berry": true, "custap-berry": true, "jaboca-berry": true, "rowap-berry": true,
}

// flavorBerries heal a third of max HP and confuse holders that dislike
// the flavor.
var flavorBerries = map[string]string{
	"figy-berry":   "spicy",
	"wiki-berry":   "dry",
	"mago-berry":   "sweet",
	"aguav-berry":  "bitter",
	"iapapa-berry": "sour",
}

// statBerries raise one stat by one stage.
var statBerries = map[string]Stat{
	"apicot-berry": StatSpDef,
	"ganlon-berry": StatDefense,
	"liechi-berry": StatAttack,
	"petaya-berry": StatSpAtk,
	"salac-berry":  StatSpeed,
}

type berryCure struct {
	has   func(p *Pokemon) bool
	cure  func(p *Pokemon)
	cured string
}

func cureStatus(p *Pokemon) { p.NV.Reset() }

// cureBerries each cure a single condition.
var cureBerries = map[string]berryCure{
	"aspear-berry": {has: func(p *Pokemon) bool { return p.NV.Freeze() }, cure: cureStatus, cured: "is no longer frozen"},
	"cheri-berry":  {has: func(p *Pokemon) bool { return p.NV.Paralysis() }, cure: cureStatus, cured: "is no longer paralyzed"},
	"chesto-berry": {has: func(p *Pokemon) bool { return p.NV.Sleep() }, cure: cureStatus, cured: "woke up"},
	"pecha-berry":  {has: func(p *Pokemon) bool { return p.NV.Poison() }, cure: cureStatus, cured: "is no longer poisoned"},
	"rawst-berry":  {has: func(p *Pokemon) bool { return p.NV.Burn() }, cure: cureStatus, cured: "is no longer burned"},
	"persim-berry": {
		has:   func(p *Pokemon) bool { return p.Confusion.Active() },
		cure:  func(p *Pokemon) { p.Confusion.SetTurns(0) },
		cured: "is no longer confused",
	},
}

func (h *HeldItem) shouldEatBerry(b *Battle, other *Pokemon) bool {
	if h.owner.Fainted() {
		return false
	}
	if other != nil {
		switch other.Ability() {
		case AbilityUnnerve, AbilityAsOneShadow, AbilityAsOneIce:
			return false
		}
	}
	return h.IsBerry(b)
}

// ShouldEatBerryDamage reports whether the holder eats its berry after
// losing HP. other is the opposing creature, whose ability may block it.
func (h *HeldItem) ShouldEatBerryDamage(b *Battle, other *Pokemon) bool {
	if !h.shouldEatBerry(b, other) {
		return false
	}
	p := h.owner
	berry := h.Get(b)
	if p.HP*4 <= p.MaxHP && pinchBerries[berry] {
		return true
	}
	if p.HP*2 <= p.MaxHP {
		if p.Ability() == AbilityGluttony || berry == "sitrus-berry" {
			return true
		}
	}
	return false
}

// ShouldEatBerryStatus reports whether the holder eats its berry to cure a
// condition it has.
func (h *HeldItem) ShouldEatBerryStatus(b *Battle, other *Pokemon) bool {
	if !h.shouldEatBerry(b, other) {
		return false
	}
	p := h.owner
	berry := h.Get(b)
	if berry == "lum-berry" {
		return p.NV.Current() != StatusNone || p.Confusion.Active()
	}
	if c, ok := cureBerries[berry]; ok {
		return c.has(p)
	}
	return false
}

// ShouldEatBerry combines both berry checks.
func (h *HeldItem) ShouldEatBerry(b *Battle, other *Pokemon) bool {
	return h.ShouldEatBerryDamage(b, other) || h.ShouldEatBerryStatus(b, other)
}

// EatOptions describes who eats a berry. A nil Consumer means the holder.
type EatOptions struct {
	Consumer *Pokemon
	Attacker *Pokemon
	Move     *Move
}

// EatBerry eats the held berry, applying its effect to the consumer. The
// slot is emptied either way: used when the holder eats it, removed when
// another creature steals it.
func (h *HeldItem) EatBerry(b *Battle, opts EatOptions) string {
	if !h.IsBerry(b) {
		return ""
	}
	consumer := opts.Consumer
	msg := ""
	if consumer == nil {
		consumer = h.owner
	} else {
		msg += fmt.Sprintf("%s eats %s's berry!\n", consumer.Name(), h.owner.Name())
	}
	name := consumer.Name()
	ability := consumer.AbilityAgainst(opts.Attacker, opts.Move)
	ripe := 1
	if ability == AbilityRipen {
		ripe = 2
	}
	change := StatChange{Attacker: opts.Attacker, Move: opts.Move, Source: "eating its berry"}

	berry := h.Get(b)
	flavor := flavorBerries[berry]
	switch {
	case berry == "sitrus-berry":
		msg += consumer.Heal(ripe*consumer.MaxHP/4, "eating its berry")
	case berry == "oran-berry":
		msg += consumer.Heal(ripe*10, "eating its berry")
	case berry == "leppa-berry":
		msg += restorePP(b, consumer, ripe*10)
	case flavor != "":
		msg += consumer.Heal(ripe*consumer.MaxHP/3, "eating its berry")
	case berry == "starf-berry":
		stat := []Stat{StatAttack, StatDefense, StatSpAtk, StatSpDef, StatSpeed}[b.randint(0, 4)]
		msg += consumer.AppendStat(stat, ripe*2, change)
	case berry == "lansat-berry":
		consumer.LansatBerryAte = true
		msg += fmt.Sprintf("%s is powered up by eating its berry.\n", name)
	case berry == "micle-berry":
		consumer.MicleBerryAte = true
		msg += fmt.Sprintf("%s is powered up by eating its berry.\n", name)
	case berry == "custap-berry":
		consumer.CustapBerryAte = true
		msg += fmt.Sprintf("%s is powered up by eating its berry.\n", name)
	case berry == "lum-berry":
		consumer.NV.Reset()
		consumer.Confusion.SetTurns(0)
		msg += fmt.Sprintf("%s's statuses were cleared from eating its berry!\n", name)
	default:
		if stat, ok := statBerries[berry]; ok {
			msg += consumer.AppendStat(stat, ripe, change)
			break
		}
		if c, ok := cureBerries[berry]; ok && c.has(consumer) {
			c.cure(consumer)
			msg += fmt.Sprintf("%s %s after eating its berry!\n", name, c.cured)
			break
		}
		msg += fmt.Sprintf("%s's berry had no effect!\n", name)
	}

	if flavor != "" && consumer.DislikedFlavor == flavor {
		msg += consumer.Confuse(b, opts.Attacker, opts.Move, "disliking its berry's flavor")
	}
	if ability == AbilityCheekPouch {
		msg += consumer.Heal(consumer.MaxHP/3, "its cheek pouch")
	}

	consumer.LastBerry = h.item
	consumer.AteBerry = true
	if ability == AbilityCudChew {
		consumer.CudChew.SetTurns(2)
	}

	if consumer == h.owner {
		h.consume(b)
	} else {
		if err := h.Remove(); err == nil {
			b.emit(EventItemConsumed, consumer, h.owner, map[string]any{KeyItem: berry})
		}
	}
	return msg
}

func restorePP(b *Battle, p *Pokemon, amount int) string {
	var missing []*Move
	for _, m := range p.Moves {
		if m.PP < m.MaxPP {
			missing = append(missing, m)
		}
	}
	if len(missing) == 0 {
		return ""
	}
	m := missing[b.randint(0, len(missing)-1)]
	restored := min(amount, m.MaxPP-m.PP)
	m.PP += restored
	return fmt.Sprintf("%s restored %d PP to %s!\n", p.Name(), restored, m.Name())
}
