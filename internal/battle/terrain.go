package battle

import "fmt"

type terrainInfo struct {
	mimicry ElementType
	seed    string
	stat    Stat
}

var terrainTable = map[TerrainKind]terrainInfo{
	TerrainElectric: {mimicry: ElementElectric, seed: "electric-seed", stat: StatDefense},
	TerrainGrassy:   {mimicry: ElementGrass, seed: "grassy-seed", stat: StatDefense},
	TerrainMisty:    {mimicry: ElementFairy, seed: "misty-seed", stat: StatSpDef},
	TerrainPsychic:  {mimicry: ElementPsychic, seed: "psychic-seed", stat: StatSpDef},
}

// Terrain is the field terrain slot.
type Terrain struct {
	ExpiringValue[TerrainKind]
}

// Get returns the active terrain.
func (t *Terrain) Get() TerrainKind { return t.Value }

// Set installs kind, created by attacker.
func (t *Terrain) Set(b *Battle, kind TerrainKind, attacker *Pokemon) string {
	if kind == t.Value {
		return fmt.Sprintf("There's already a %s terrain!\n", kind)
	}
	if _, ok := terrainTable[kind]; !ok {
		return ""
	}
	turns := fieldTurns
	if attacker != nil && attacker.HeldItem.Is(b, "terrain-extender") {
		turns = extendedFieldTurns
	}
	t.ExpiringValue.Set(kind, turns)
	b.emit(EventTerrainChanged, b, nil, map[string]any{KeyTerrain: kind.String()})

	msg := ""
	if attacker != nil {
		article := "a"
		if kind == TerrainElectric {
			article = "an"
		}
		msg += fmt.Sprintf("%s creates %s %s terrain!\n", attacker.Name(), article, kind)
	}
	for _, p := range b.Actives() {
		if p != nil {
			msg += t.applyTo(b, p)
		}
	}
	return msg
}

// applyTo runs the install side effects of the current terrain on p: the
// Mimicry type change and the matching seed.
func (t *Terrain) applyTo(b *Battle, p *Pokemon) string {
	info, ok := terrainTable[t.Value]
	if !ok || p.Fainted() {
		return ""
	}
	msg := ""
	if p.Ability() == AbilityMimicry {
		p.SetTypeOverride([]ElementType{info.mimicry})
		msg += fmt.Sprintf("%s became a %s type using its mimicry!\n", p.Name(), info.mimicry)
	}
	if p.HeldItem.Is(b, info.seed) {
		msg += p.AppendStat(info.stat, 1, StatChange{Attacker: p, Source: "its " + spacedName(info.seed)})
		p.HeldItem.consume(b)
	}
	return msg
}

// NextTurn counts the terrain down, ending it on expiry.
func (t *Terrain) NextTurn(b *Battle) bool {
	if !t.ExpiringValue.NextTurn() {
		return false
	}
	t.End(b)
	return true
}

// End removes the terrain and reverts Mimicry creatures.
func (t *Terrain) End(b *Battle) {
	t.ExpiringValue.End()
	b.emit(EventTerrainChanged, b, nil, map[string]any{KeyTerrain: "none"})
	for _, p := range b.Actives() {
		if p != nil && p.Ability() == AbilityMimicry {
			p.SetTypeOverride(p.StartingTypes)
		}
	}
}
