package wfa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/wpds/internal/keyset"
	"github.com/luxfi/wpds/key"
	"github.com/luxfi/wpds/semiring/genkill"
	"github.com/luxfi/wpds/wfa"
)

func TestIntersectKeepBothExtendsBothWeights(t *testing.T) {
	in := key.New()
	p1, q1 := in.Get("p1"), in.Get("q1")
	p2, q2 := in.Get("p2"), in.Get("q2")
	g := in.Get("g")

	w1 := genkill.New(keyset.Of(in.Get("a")), keyset.Set[key.Key]{})
	w2 := genkill.New(keyset.Set[key.Key]{}, keyset.Of(in.Get("b")))

	a1 := wfa.New()
	a1.SetInitialState(p1, w1.Zero())
	a1.AddFinalState(q1, w1.Zero())
	a1.AddTrans(p1, g, q1, w1)

	a2 := wfa.New()
	a2.SetInitialState(p2, w2.Zero())
	a2.AddFinalState(q2, w2.Zero())
	a2.AddTrans(p2, g, q2, w2)

	prod := a1.Intersect(in, wfa.KeepBoth, a2)

	destInit := in.Pair(p1, p2)
	destFinal := in.Pair(q1, q2)
	require.Equal(t, destInit, prod.InitialState())
	require.True(t, prod.IsFinalState(destFinal))

	tr, ok := prod.Find(destInit, g, destFinal)
	require.True(t, ok)
	require.True(t, tr.Weight.Equal(w1.Extend(w2)))
}

func TestIntersectKeepLeftDiscardsRightWeight(t *testing.T) {
	in := key.New()
	p1, q1 := in.Get("p1"), in.Get("q1")
	p2, q2 := in.Get("p2"), in.Get("q2")
	g := in.Get("g")

	w1 := genkill.New(keyset.Of(in.Get("a")), keyset.Set[key.Key]{})
	w2 := genkill.New(keyset.Set[key.Key]{}, keyset.Of(in.Get("b")))

	a1 := wfa.New()
	a1.SetInitialState(p1, w1.Zero())
	a1.AddFinalState(q1, w1.Zero())
	a1.AddTrans(p1, g, q1, w1)

	a2 := wfa.New()
	a2.SetInitialState(p2, w2.Zero())
	a2.AddFinalState(q2, w2.Zero())
	a2.AddTrans(p2, g, q2, w2)

	prod := a1.Intersect(in, wfa.KeepLeft, a2)

	tr, ok := prod.Find(in.Pair(p1, p2), g, in.Pair(q1, q2))
	require.True(t, ok)
	require.True(t, tr.Weight.Equal(w1))
}

func TestIntersectSkipsMismatchedStackSymbols(t *testing.T) {
	in := key.New()
	p1, q1 := in.Get("p1"), in.Get("q1")
	p2, q2 := in.Get("p2"), in.Get("q2")
	g1, g2 := in.Get("g1"), in.Get("g2")

	w := genkill.New(keyset.Set[key.Key]{}, keyset.Set[key.Key]{})

	a1 := wfa.New()
	a1.SetInitialState(p1, w.Zero())
	a1.AddFinalState(q1, w.Zero())
	a1.AddTrans(p1, g1, q1, w.One())

	a2 := wfa.New()
	a2.SetInitialState(p2, w.Zero())
	a2.AddFinalState(q2, w.Zero())
	a2.AddTrans(p2, g2, q2, w.One())

	prod := a1.Intersect(in, wfa.KeepBoth, a2)
	_, ok := prod.Find(in.Pair(p1, p2), g1, in.Pair(q1, q2))
	require.False(t, ok, "transitions over different stack symbols must not be paired")
}
