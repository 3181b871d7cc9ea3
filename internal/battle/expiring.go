package battle

// Forever marks an effect that never expires on its own.
const Forever = -1

// ExpiringEffect counts down the turns an effect has left. The zero value
// is inactive.
type ExpiringEffect struct {
	remaining int
}

// NewExpiringEffect returns an effect lasting turns turns (Forever for
// permanent, 0 for inactive).
func NewExpiringEffect(turns int) ExpiringEffect {
	return ExpiringEffect{remaining: turns}
}

// Active reports whether the effect is permanent or has turns left.
func (e *ExpiringEffect) Active() bool {
	return e.remaining != 0
}

// Turns returns the remaining turns, Forever for a permanent effect.
func (e *ExpiringEffect) Turns() int {
	return e.remaining
}

// SetTurns assigns the remaining duration.
func (e *ExpiringEffect) SetTurns(turns int) {
	if turns < 0 {
		turns = Forever
	}
	e.remaining = turns
}

// NextTurn advances the effect one turn and reports whether this call
// ended it.
func (e *ExpiringEffect) NextTurn() bool {
	if e.remaining <= 0 {
		return false
	}
	e.remaining--
	return e.remaining == 0
}

// ExpiringValue is an ExpiringEffect carrying a payload that is cleared when
// the effect ends.
type ExpiringValue[T comparable] struct {
	ExpiringEffect
	Value T
}

// Set installs value for turns turns.
func (e *ExpiringValue[T]) Set(value T, turns int) {
	e.Value = value
	e.SetTurns(turns)
}

// NextTurn advances the timer, clearing the payload on expiry.
func (e *ExpiringValue[T]) NextTurn() bool {
	expired := e.ExpiringEffect.NextTurn()
	if expired {
		var zero T
		e.Value = zero
	}
	return expired
}

// End clears the payload and deactivates the timer.
func (e *ExpiringValue[T]) End() {
	var zero T
	e.Value = zero
	e.remaining = 0
}

// ExpiringItem is a timer holding an item identifier.
type ExpiringItem = ExpiringValue[string]

// LockedMove is a multi-turn move a creature is committed to.
type LockedMove struct {
	ExpiringEffect
	Move *Move
	Turn int
}

// NewLockedMove locks move in for turns turns.
func NewLockedMove(move *Move, turns int) *LockedMove {
	return &LockedMove{ExpiringEffect: NewExpiringEffect(turns), Move: move}
}

// NextTurn advances the lock and the elapsed turn counter.
func (l *LockedMove) NextTurn() bool {
	expired := l.ExpiringEffect.NextTurn()
	l.Turn++
	return expired
}

// IsLastTurn reports whether this is the final turn of the lock.
func (l *LockedMove) IsLastTurn() bool {
	return l.remaining == 1
}

const wishTurns = 2

// ExpiringWish banks HP that is paid out when the timer runs out.
type ExpiringWish struct {
	ExpiringEffect
	hp int
}

// Set banks hp to be healed at the end of the next turn.
func (w *ExpiringWish) Set(hp int) {
	w.hp = hp
	w.remaining = wishTurns
}

// HP returns the banked amount.
func (w *ExpiringWish) HP() int {
	return w.hp
}

// NextTurn advances the wish and returns the HP to heal, which is zero
// unless the wish came true on this call.
func (w *ExpiringWish) NextTurn() int {
	if !w.ExpiringEffect.NextTurn() {
		return 0
	}
	hp := w.hp
	w.hp = 0
	return hp
}
