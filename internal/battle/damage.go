package battle

import "fmt"

// critical hit odds (1 in n) by crit stage
var critOdds = []int{24, 8, 2, 1}

type damageResult struct {
	damage        int
	effectiveness float64
	critical      bool
	// msg narrates anything that happened while calculating, such as a
	// resist berry or a fizzled attack.
	msg string
}

// calculateDamage runs the damage formula for attacker hitting defender
// with m. It may consume the defender's resist berry.
func (b *Battle) calculateDamage(attacker, defender *Pokemon, m *Move) damageResult {
	res := damageResult{effectiveness: Effectiveness(m.Type, defender.Types())}
	if m.Type == ElementGround && !defender.Grounded(b, attacker, m) {
		res.effectiveness = 0
	}
	if res.effectiveness == 0 {
		return res
	}

	weather := b.Weather.Get(b)
	if weather == WeatherHeavyRain && m.Type == ElementFire {
		res.effectiveness = 0
		res.msg = "The fire type attack fizzled out in the heavy rain!\n"
		return res
	}
	if weather == WeatherHeavySun && m.Type == ElementWater {
		res.effectiveness = 0
		res.msg = "The water type attack evaporated in the harsh sunlight!\n"
		return res
	}

	stage := 0
	if attacker.FocusEnergy {
		stage += 2
	}
	if attacker.LansatBerryAte {
		stage += 2
	}
	stage = min(stage, len(critOdds)-1)
	switch defender.AbilityAgainst(attacker, m) {
	case AbilityShellArmor, AbilityBattleArmor:
	default:
		res.critical = b.randint(1, critOdds[stage]) == 1
	}

	atkStat, defStat := StatAttack, StatDefense
	if m.Class() == DamageClassSpecial {
		atkStat, defStat = StatSpAtk, StatSpDef
	}
	atkStage, defStage := attacker.Stage(atkStat), defender.Stage(defStat)
	if res.critical {
		atkStage = max(0, atkStage)
		defStage = min(0, defStage)
	}
	a := float64(attacker.statAtStage(b, atkStat, atkStage))
	d := float64(defender.statAtStage(b, defStat, defStage))
	if weather == WeatherSandstorm && defStat == StatSpDef && defender.HasType(ElementRock) {
		d *= 1.5
	}

	base := float64((2*attacker.Level/5+2)*m.Power())*a/d/50 + 2

	modifier := 1.0
	switch {
	case weather.IsRain() && m.Type == ElementWater, weather.IsSun() && m.Type == ElementFire:
		modifier *= 1.5
	case weather.IsRain() && m.Type == ElementFire, weather.IsSun() && m.Type == ElementWater:
		modifier *= 0.5
	}
	if res.critical {
		modifier *= 1.5
	}
	modifier *= float64(b.randint(85, 100)) / 100
	if attacker.HasType(m.Type) {
		if attacker.Ability() == AbilityAdaptability {
			modifier *= 2
		} else {
			modifier *= 1.5
		}
	}
	modifier *= res.effectiveness
	if m.Class() == DamageClassPhysical && attacker.NV.Burn() && attacker.Ability() != AbilityGuts {
		modifier *= 0.5
	}

	superEffective := res.effectiveness > 1
	modifier *= attacker.HeldItem.DamageMultiplier(b, m, superEffective)
	resist, msg := defender.HeldItem.DefensiveMultiplier(b, m.Type, superEffective)
	modifier *= resist
	res.msg += msg

	res.damage = max(1, int(base*modifier))
	return res
}

// confusionDamage is the typeless 40 power hit a confused creature deals
// itself.
func (b *Battle) confusionDamage(p *Pokemon) int {
	a := p.EffectiveStat(b, StatAttack)
	d := p.EffectiveStat(b, StatDefense)
	return (2*p.Level/5+2)*40*a/d/50 + 2
}

func effectivenessMessage(effectiveness float64, target *Pokemon) string {
	switch {
	case effectiveness == 0:
		return fmt.Sprintf("It doesn't affect %s...\n", target.Name())
	case effectiveness > 1:
		return "It's super effective!\n"
	case effectiveness < 1:
		return "It's not very effective...\n"
	}
	return ""
}
