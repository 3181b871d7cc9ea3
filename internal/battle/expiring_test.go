package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpiringEffect_LastsExactlyNTurns(t *testing.T) {
	for _, n := range []int{1, 2, 5, 8} {
		e := NewExpiringEffect(n)
		for i := 1; i < n; i++ {
			assert.False(t, e.NextTurn(), "turn %d of %d", i, n)
			assert.True(t, e.Active())
		}
		assert.True(t, e.NextTurn(), "expires on turn %d", n)
		assert.False(t, e.Active())
		assert.False(t, e.NextTurn(), "stays expired")
		assert.Equal(t, 0, e.Turns())
	}
}

func TestExpiringEffect_Forever(t *testing.T) {
	e := NewExpiringEffect(Forever)
	for range 100 {
		assert.False(t, e.NextTurn())
	}
	assert.True(t, e.Active())

	e.SetTurns(-7)
	assert.Equal(t, Forever, e.Turns())
}

func TestExpiringEffect_ZeroValueInactive(t *testing.T) {
	var e ExpiringEffect
	assert.False(t, e.Active())
	assert.False(t, e.NextTurn())
}

func TestExpiringValue_ClearsPayload(t *testing.T) {
	var item ExpiringItem
	item.Set("micle-berry", 2)
	assert.False(t, item.NextTurn())
	assert.Equal(t, "micle-berry", item.Value)
	assert.True(t, item.NextTurn())
	assert.Empty(t, item.Value)

	item.Set("lum-berry", Forever)
	item.End()
	assert.False(t, item.Active())
	assert.Empty(t, item.Value)
}

func TestExpiringWish(t *testing.T) {
	var w ExpiringWish
	w.Set(120)
	assert.Equal(t, 120, w.HP())
	assert.Equal(t, 0, w.NextTurn())
	assert.Equal(t, 120, w.NextTurn())
	assert.False(t, w.Active())
	assert.Equal(t, 0, w.NextTurn())
}

func TestLockedMove(t *testing.T) {
	l := NewLockedMove(nil, 2)
	assert.False(t, l.IsLastTurn())
	assert.False(t, l.NextTurn())
	assert.True(t, l.IsLastTurn())
	assert.True(t, l.NextTurn())
	assert.Equal(t, 2, l.Turn)
}
