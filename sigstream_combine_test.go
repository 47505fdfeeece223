package sigstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	t.Run("waits for both sides", func(t *testing.T) {
		l := New[bool]()
		r := New[bool]()
		got := collect(And(l, r))

		l.Emit(true)
		assert.Empty(t, *got)

		r.Emit(true)
		r.Emit(false)

		assert.Equal(t, []bool{true, false}, *got)
	})

	t.Run("re-emits on every contributing emission", func(t *testing.T) {
		l := New[int]()
		r := New[string]()
		got := collect(Join(l, r, func(n int, s string) string {
			return s + string(rune('0'+n))
		}))

		r.Emit("x")
		l.Emit(1)
		l.Emit(2)
		l.Emit(2)
		r.Emit("y")

		assert.Equal(t, []string{"x1", "x2", "x2", "y2"}, *got)
	})

	t.Run("boolean algebra", func(t *testing.T) {
		cases := []struct {
			l, r         bool
			and, or, xor bool
		}{
			{false, false, false, false, false},
			{false, true, false, true, true},
			{true, false, false, true, true},
			{true, true, true, true, false},
		}

		for _, tc := range cases {
			l := New[bool]()
			r := New[bool]()
			and := NewHolding[bool]()
			or := NewHolding[bool]()
			xor := NewHolding[bool]()
			And(l, r).Pipe(and)
			Or(l, r).Pipe(or)
			Xor(l, r).Pipe(xor)

			l.Emit(tc.l)
			r.Emit(tc.r)

			v, _ := and.Latest()
			assert.Equal(t, tc.and, v, "%t and %t", tc.l, tc.r)
			v, _ = or.Latest()
			assert.Equal(t, tc.or, v, "%t or %t", tc.l, tc.r)
			v, _ = xor.Latest()
			assert.Equal(t, tc.xor, v, "%t xor %t", tc.l, tc.r)
		}
	})
}

func TestSum(t *testing.T) {
	l := New[int]()
	r := New[string]()
	got := collect(Sum(l, r))

	l.Emit(1)
	r.Emit("a")
	r.Emit("b")
	l.Emit(2)
	r.Emit("c")

	assert.Equal(t, []Either[int, string]{
		{Side: Left, Left: 1},
		{Side: Right, Right: "a"},
		{Side: Right, Right: "b"},
		{Side: Left, Left: 2},
		{Side: Right, Right: "c"},
	}, *got)

	assert.True(t, (*got)[0].IsLeft())
	assert.True(t, (*got)[1].IsRight())
	assert.Equal(t, "left(1)", (*got)[0].String())
	assert.Equal(t, "right(a)", (*got)[1].String())
}

func TestProduct(t *testing.T) {
	l := New[int]()
	r := New[bool]()
	got := collect(Product(l, r))

	l.Emit(1)
	l.Emit(2)
	r.Emit(true)
	l.Emit(3)

	assert.Equal(t, []Pair[int, bool]{
		{2, true},
		{3, true},
	}, *got)
	assert.Equal(t, "(3, true)", (*got)[1].String())
}

func TestZip(t *testing.T) {
	a := New[int]()
	b := New[int]()
	got := collect(a.Zip(b, func(x, y int) int { return x*10 + y }))

	a.Emit(1)
	b.Emit(2)
	b.Emit(3)
	a.Emit(4)

	assert.Equal(t, []int{12, 13, 43}, *got)
}

func TestZipMatchesProductThenMap(t *testing.T) {
	a := New[string]()
	b := New[string]()
	zipped := collect(a.Zip(b, func(x, y string) string { return x + y }))
	mapped := collect(Map(Product(a, b), func(p Pair[string, string]) string { return p.Left + p.Right }))

	a.Emit("a")
	a.Emit("b")
	b.Emit("x")
	a.Emit("c")
	b.Emit("y")

	assert.Equal(t, []string{"bx", "cx", "cy"}, *zipped)
	assert.Equal(t, *mapped, *zipped)
}

func TestJoinSameSource(t *testing.T) {
	s := New[int]()
	got := collect(Join(s, s, func(l, r int) int { return l + r }))

	s.Emit(1)
	s.Emit(2)

	// the right side only has a value once its own subscriber ran
	assert.Equal(t, []int{2, 3, 4}, *got)
}
