package battle

import "fmt"

// endOfTurn resolves everything that happens after both actions.
func (b *Battle) endOfTurn() {
	order := b.speedOrder()

	weather := b.Weather.Get(b)
	for _, p := range order {
		b.Narrate(b.weatherEffect(p, weather))
	}
	b.Weather.NextTurn(b)
	b.Weather.RecheckAbilityWeather(b)

	for _, t := range b.Trainers() {
		hp := t.Wish.NextTurn()
		if p := t.Current(); hp > 0 && p != nil && !p.Fainted() {
			b.Narrate(fmt.Sprintf("%s's wish came true!\n", p.Name()))
			b.Narrate(p.Heal(hp, ""))
		}
	}

	if b.Terrain.Get() == TerrainGrassy {
		for _, p := range order {
			if !p.Fainted() && p.Grounded(b, nil, nil) {
				b.Narrate(p.Heal(max(1, p.MaxHP/16), "the grassy terrain"))
			}
		}
	}

	for _, p := range order {
		if p.Fainted() {
			continue
		}
		b.Narrate(p.NV.NextTurn(b))
		b.Narrate(p.HeldItem.ActivateEndOfTurn(b))
		b.Narrate(b.leechSeed(p))
		if p.Ingrain {
			b.Narrate(p.Heal(max(1, p.MaxHP/16), "its roots"))
		}
		if p.AquaRing {
			b.Narrate(p.Heal(max(1, p.MaxHP/16), "its aqua ring"))
		}
	}

	b.fieldTimers()
	for _, p := range order {
		b.creatureTimers(p)
		p.UsedDamagingMove = false
	}
}

func (b *Battle) weatherEffect(p *Pokemon, weather WeatherKind) string {
	if p.Fainted() {
		return ""
	}
	ability := p.Ability()
	shielded := ability == AbilityMagicGuard || ability == AbilityOvercoat || p.HeldItem.Is(b, "safety-goggles")
	switch weather {
	case WeatherSandstorm:
		if shielded || p.HasType(ElementRock) || p.HasType(ElementGround) || p.HasType(ElementSteel) {
			return ""
		}
		switch ability {
		case AbilitySandForce, AbilitySandRush, AbilitySandVeil:
			return ""
		}
		return p.Damage(b, max(1, p.MaxHP/16), "the sandstorm")
	case WeatherHail:
		if ability == AbilityIceBody {
			return p.Heal(max(1, p.MaxHP/16), "its ice body")
		}
		if shielded || p.HasType(ElementIce) || ability == AbilitySnowCloak || ability == AbilitySlushRush {
			return ""
		}
		return p.Damage(b, max(1, p.MaxHP/16), "the hail")
	case WeatherRain, WeatherHeavyRain:
		if ability == AbilityRainDish {
			return p.Heal(max(1, p.MaxHP/16), "its rain dish")
		}
	}
	return ""
}

func (b *Battle) leechSeed(p *Pokemon) string {
	if !p.LeechSeed || p.Fainted() || p.Ability() == AbilityMagicGuard {
		return ""
	}
	drained := min(max(1, p.MaxHP/8), p.HP)
	msg := p.Damage(b, drained, "leech seed")
	if opp := b.Opponent(p); opp != nil && !opp.Fainted() {
		msg += opp.Heal(drained, "leech seed")
	}
	return msg
}

func (b *Battle) fieldTimers() {
	if kind := b.Terrain.Get(); b.Terrain.NextTurn(b) {
		b.Narrate(fmt.Sprintf("The %s terrain faded.\n", kind))
	}
	if b.TrickRoom.NextTurn() {
		b.Narrate("The twisted dimensions returned to normal!\n")
	}
	if b.MagicRoom.NextTurn() {
		b.Narrate("The area returned to normal!\n")
	}
	for _, t := range b.Trainers() {
		if t.Safeguard.NextTurn() {
			b.Narrate(fmt.Sprintf("%s's team is no longer protected by Safeguard!\n", t.Name))
		}
	}
}

func (b *Battle) creatureTimers(p *Pokemon) {
	if p.Fainted() {
		return
	}
	name := p.Name()
	if p.Embargo.NextTurn() {
		b.Narrate(fmt.Sprintf("%s can use items again!\n", name))
	}
	if p.MagnetRise.NextTurn() {
		b.Narrate(fmt.Sprintf("%s's electromagnetism wore off!\n", name))
	}
	if p.HealBlock.NextTurn() {
		b.Narrate(fmt.Sprintf("%s's heal block wore off!\n", name))
	}
	if p.Uproar.NextTurn() {
		b.Narrate(fmt.Sprintf("%s calmed down.\n", name))
	}
	if p.Telekinesis.NextTurn() {
		b.Narrate(fmt.Sprintf("%s was freed from the telekinesis!\n", name))
	}
	p.MindReader.NextTurn()
	if p.PerishSong.Active() {
		expired := p.PerishSong.NextTurn()
		b.Narrate(fmt.Sprintf("%s's perish count fell to %d!\n", name, p.PerishSong.Turns()))
		if expired {
			b.Narrate(p.Damage(b, p.HP, "perish song"))
		}
	}
	if p.CudChew.NextTurn() {
		b.Narrate(p.chewCud(b))
	}
}

// chewCud eats the last berry again.
func (p *Pokemon) chewCud(b *Battle) string {
	berry := p.LastBerry
	if berry == nil || p.Fainted() || p.HeldItem.HasItem() {
		return ""
	}
	p.HeldItem.item = berry
	if !p.HeldItem.IsBerry(b) {
		p.HeldItem.item = nil
		return ""
	}
	msg := fmt.Sprintf("%s chewed its %s again!\n", p.Name(), prettyName(berry.Identifier))
	msg += p.HeldItem.EatBerry(b, EatOptions{})
	p.CudChew.SetTurns(0)
	return msg
}
