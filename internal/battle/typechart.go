package battle

type matchup struct {
	double []ElementType
	half   []ElementType
	zero   []ElementType
}

// attacking type -> defending types
var typeChart = map[ElementType]matchup{
	ElementNormal: {
		half: []ElementType{ElementRock, ElementSteel},
		zero: []ElementType{ElementGhost},
	},
	ElementFighting: {
		double: []ElementType{ElementNormal, ElementIce, ElementRock, ElementDark, ElementSteel},
		half:   []ElementType{ElementPoison, ElementFlying, ElementPsychic, ElementBug, ElementFairy},
		zero:   []ElementType{ElementGhost},
	},
	ElementFlying: {
		double: []ElementType{ElementGrass, ElementFighting, ElementBug},
		half:   []ElementType{ElementElectric, ElementRock, ElementSteel},
	},
	ElementPoison: {
		double: []ElementType{ElementGrass, ElementFairy},
		half:   []ElementType{ElementPoison, ElementGround, ElementRock, ElementGhost},
		zero:   []ElementType{ElementSteel},
	},
	ElementGround: {
		double: []ElementType{ElementFire, ElementElectric, ElementPoison, ElementRock, ElementSteel},
		half:   []ElementType{ElementGrass, ElementBug},
		zero:   []ElementType{ElementFlying},
	},
	ElementRock: {
		double: []ElementType{ElementFire, ElementIce, ElementFlying, ElementBug},
		half:   []ElementType{ElementFighting, ElementGround, ElementSteel},
	},
	ElementBug: {
		double: []ElementType{ElementGrass, ElementPsychic, ElementDark},
		half:   []ElementType{ElementFire, ElementFighting, ElementPoison, ElementFlying, ElementGhost, ElementSteel, ElementFairy},
	},
	ElementGhost: {
		double: []ElementType{ElementPsychic, ElementGhost},
		half:   []ElementType{ElementDark},
		zero:   []ElementType{ElementNormal},
	},
	ElementSteel: {
		double: []ElementType{ElementIce, ElementRock, ElementFairy},
		half:   []ElementType{ElementFire, ElementWater, ElementElectric, ElementSteel},
	},
	ElementFire: {
		double: []ElementType{ElementGrass, ElementIce, ElementBug, ElementSteel},
		half:   []ElementType{ElementFire, ElementWater, ElementRock, ElementDragon},
	},
	ElementWater: {
		double: []ElementType{ElementFire, ElementGround, ElementRock},
		half:   []ElementType{ElementWater, ElementGrass, ElementDragon},
	},
	ElementGrass: {
		double: []ElementType{ElementWater, ElementGround, ElementRock},
		half:   []ElementType{ElementFire, ElementGrass, ElementPoison, ElementFlying, ElementBug, ElementDragon, ElementSteel},
	},
	ElementElectric: {
		double: []ElementType{ElementWater, ElementFlying},
		half:   []ElementType{ElementElectric, ElementGrass, ElementDragon},
		zero:   []ElementType{ElementGround},
	},
	ElementPsychic: {
		double: []ElementType{ElementFighting, ElementPoison},
		half:   []ElementType{ElementPsychic, ElementSteel},
		zero:   []ElementType{ElementDark},
	},
	ElementIce: {
		double: []ElementType{ElementGrass, ElementGround, ElementFlying, ElementDragon},
		half:   []ElementType{ElementFire, ElementWater, ElementIce, ElementSteel},
	},
	ElementDragon: {
		double: []ElementType{ElementDragon},
		half:   []ElementType{ElementSteel},
		zero:   []ElementType{ElementFairy},
	},
	ElementDark: {
		double: []ElementType{ElementPsychic, ElementGhost},
		half:   []ElementType{ElementFighting, ElementDark, ElementFairy},
	},
	ElementFairy: {
		double: []ElementType{ElementFighting, ElementDragon, ElementDark},
		half:   []ElementType{ElementFire, ElementPoison, ElementSteel},
	},
}

// Effectiveness returns the combined type multiplier of an attack of type
// attack against a creature with the given types.
func Effectiveness(attack ElementType, defenders []ElementType) float64 {
	m, ok := typeChart[attack]
	if !ok {
		return 1
	}
	mult := 1.0
	for _, d := range defenders {
		switch {
		case containsElement(m.zero, d):
			return 0
		case containsElement(m.double, d):
			mult *= 2
		case containsElement(m.half, d):
			mult *= 0.5
		}
	}
	return mult
}

func containsElement(list []ElementType, e ElementType) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}
