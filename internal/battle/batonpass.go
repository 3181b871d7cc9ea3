package battle

// BatonPass is the state a creature hands to its replacement.
type BatonPass struct {
	stages [numStats]int

	confusion   ExpiringEffect
	focusEnergy bool
	mindReader  ExpiringEffect
	leechSeed   bool
	curse       bool
	substitute  int
	ingrain     bool
	powerTrick  bool
	powerShift  bool
	healBlock   ExpiringEffect
	embargo     ExpiringEffect
	perishSong  ExpiringEffect
	magnetRise  ExpiringEffect
	aquaRing    bool
	telekinesis ExpiringEffect
}

// NewBatonPass snapshots p.
func NewBatonPass(p *Pokemon) *BatonPass {
	return &BatonPass{
		stages:      p.stages,
		confusion:   p.Confusion,
		focusEnergy: p.FocusEnergy,
		mindReader:  p.MindReader,
		leechSeed:   p.LeechSeed,
		curse:       p.Curse,
		substitute:  p.Substitute,
		ingrain:     p.Ingrain,
		powerTrick:  p.PowerTrick,
		powerShift:  p.PowerShift,
		healBlock:   p.HealBlock,
		embargo:     p.Embargo,
		perishSong:  p.PerishSong,
		magnetRise:  p.MagnetRise,
		aquaRing:    p.AquaRing,
		telekinesis: p.Telekinesis,
	}
}

// Apply hands the snapshot to p. Curious Medicine keeps p's own stages.
func (bp *BatonPass) Apply(p *Pokemon) {
	if p.Ability() != AbilityCuriousMedicine {
		p.stages = bp.stages
	}
	p.Confusion = bp.confusion
	p.FocusEnergy = bp.focusEnergy
	p.MindReader = bp.mindReader
	p.LeechSeed = bp.leechSeed
	p.Curse = bp.curse
	p.Substitute = bp.substitute
	p.Ingrain = bp.ingrain
	p.PowerTrick = bp.powerTrick
	p.PowerShift = bp.powerShift
	p.HealBlock = bp.healBlock
	p.Embargo = bp.embargo
	p.PerishSong = bp.perishSong
	p.MagnetRise = bp.magnetRise
	p.AquaRing = bp.aquaRing
	p.Telekinesis = bp.telekinesis
}
