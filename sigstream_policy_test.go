package sigstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolding(t *testing.T) {
	t.Run("holds nothing until the first value", func(t *testing.T) {
		s := NewHolding[int]()

		_, ok := s.Latest()
		assert.False(t, ok)

		s.Emit(1)
		s.Emit(2)

		v, ok := s.Latest()
		assert.True(t, ok)
		assert.Equal(t, 2, v)
	})

	t.Run("seeded", func(t *testing.T) {
		s := NewHoldingFrom("seed")

		v, ok := s.Latest()
		assert.True(t, ok)
		assert.Equal(t, "seed", v)
	})

	t.Run("value is stored before subscribers run", func(t *testing.T) {
		var seen []int

		s := NewHolding[int]()
		s.Subscribe(func(int) {
			v, _ := s.Latest()
			seen = append(seen, v)
		})

		s.Emit(7)

		assert.Equal(t, []int{7}, seen)
	})
}

func TestSequence(t *testing.T) {
	t.Run("replays to each new subscriber", func(t *testing.T) {
		first := []int{}
		second := []int{}

		s := NewSequence(10, 20, 30)
		s.Subscribe(func(v int) { first = append(first, v) })
		s.Emit(40)
		s.Subscribe(func(v int) { second = append(second, v) })
		s.Emit(50)

		assert.Equal(t, []int{10, 20, 30, 40, 50}, first)
		assert.Equal(t, []int{10, 20, 30, 50}, second)
	})

	t.Run("replayed emissions carry the zero time", func(t *testing.T) {
		var got []Emission[string]

		s := NewSequence("a", "b")
		s.SubscribeEmission(func(e Emission[string]) { got = append(got, e) })
		s.Emit("c")

		require.Len(t, got, 3)
		assert.True(t, got[0].IsReplay())
		assert.True(t, got[1].IsReplay())
		assert.False(t, got[2].IsReplay())
	})

	t.Run("items are copied", func(t *testing.T) {
		items := []int{1, 2}
		s := NewSequence(items...)
		items[0] = 99

		got := []int{}
		s.Subscribe(func(v int) { got = append(got, v) })

		assert.Equal(t, []int{1, 2}, got)
	})

	t.Run("empty sequence behaves like a plain signal", func(t *testing.T) {
		got := []int{}

		s := NewSequence[int]()
		s.Subscribe(func(v int) { got = append(got, v) })
		s.Emit(1)

		assert.Equal(t, []int{1}, got)
	})
}

type countingPolicy struct {
	subscribed int
	emitted    []int
}

func (p *countingPolicy) OnSubscribe(func(Emission[int])) { p.subscribed++ }

func (p *countingPolicy) OnEmit(v int, propagate func(int)) {
	p.emitted = append(p.emitted, v)
	if v >= 0 {
		propagate(v)
	}
}

func TestCustomPolicy(t *testing.T) {
	p := &countingPolicy{}
	got := []int{}

	s := NewWithPolicy[int](p)
	s.Subscribe(func(v int) { got = append(got, v) })
	s.Emit(1)
	s.Emit(-1)
	s.Emit(2)

	assert.Equal(t, 1, p.subscribed)
	assert.Equal(t, []int{1, -1, 2}, p.emitted)
	assert.Equal(t, []int{1, 2}, got)
}
