package wpds_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/wpds/internal/keyset"
	"github.com/luxfi/wpds/key"
	"github.com/luxfi/wpds/semiring/genkill"
	"github.com/luxfi/wpds/wfa"
	"github.com/luxfi/wpds/wpds"
)

// Scenario A (spec.md §8): a push rule followed by a pop rule, rooted
// at a single-transition input automaton. post* must fold the new
// gen/kill transformer reachable from (p,a) into the transition's
// weight, combined with the transition's own starting weight (One,
// since the combined triple already existed in the input WFA).
func TestPostStarScenarioAGenKillReachability(t *testing.T) {
	in := key.New()
	w := newWPDS(t, in)

	p := in.Get("p")
	a, b := in.Get("a"), in.Get("b")
	x, y := in.Get("x"), in.Get("y")

	w1 := genkill.New(keyset.Set[key.Key]{}, keyset.Of(x)) // kill={}, gen={x}
	w2 := genkill.New(keyset.Of(y), keyset.Set[key.Key]{})  // kill={y}, gen={}

	_, err := w.AddPushRule(p, a, p, b, a, w1)
	require.NoError(t, err)
	_, err = w.AddPopRule(p, b, p, w2)
	require.NoError(t, err)

	q := in.Get("q")
	seed := one()
	input := wfa.New()
	input.SetInitialState(p, seed.Zero())
	input.AddFinalState(q, seed.Zero())
	input.AddTrans(p, a, q, seed)

	out, err := w.PostStar(context.Background(), input)
	require.NoError(t, err)

	tr, ok := out.Find(p, a, q)
	require.True(t, ok)

	derived := w1.Extend(w2)
	require.True(t, derived.Equal(genkill.New(keyset.Of(y), keyset.Of(x))), "sanity: rules compose to kill={y}, gen={x}")

	want := seed.Combine(derived)
	require.True(t, tr.Weight.Equal(want), "got %v, want %v", tr.Weight, want)
}

// Scenario B (spec.md §8): a two-rule chain (p,a)->(q,b)->(r,ε). pre*
// of an automaton accepting (r,ε) must produce an accepting transition
// reachable by (p,a,·).
func TestPreStarScenarioBMinimalChain(t *testing.T) {
	in := key.New()
	w := newWPDS(t, in)

	p, q, r := in.Get("p"), in.Get("q"), in.Get("r")
	a, b := in.Get("a"), in.Get("b")

	_, err := w.AddStepRule(p, a, q, b, one())
	require.NoError(t, err)
	_, err = w.AddPopRule(q, b, r, one())
	require.NoError(t, err)

	accept := in.Get("accept")
	input := wfa.New()
	input.SetInitialState(r, one().Zero())
	input.AddFinalState(accept, one().Zero())
	input.AddTrans(r, key.Epsilon, accept, one())

	out, err := w.PreStar(context.Background(), input)
	require.NoError(t, err)

	_, ok := out.Find(p, a, accept)
	require.True(t, ok, "pre* must yield an accepting transition reachable by (p,a,.)")
	require.True(t, out.IsFinalState(accept))
}

// Scenario D (spec.md §8): two push rules whose targets share the
// entry symbol e must allocate exactly one post* mid-state for (p,e),
// whose quasi weight is the combine of both rules' contributions.
func TestPostStarScenarioDMidStateReuse(t *testing.T) {
	in := key.New()
	w := newWPDS(t, in)

	p := in.Get("p")
	a, b, e, r1, r2 := in.Get("a"), in.Get("b"), in.Get("e"), in.Get("r1"), in.Get("r2")

	w1 := genkill.New(keyset.Of(in.Get("x")), keyset.Set[key.Key]{})
	w2 := genkill.New(keyset.Set[key.Key]{}, keyset.Of(in.Get("y")))

	_, err := w.AddPushRule(p, a, p, e, r1, w1)
	require.NoError(t, err)
	_, err = w.AddPushRule(p, b, p, e, r2, w2)
	require.NoError(t, err)

	q := in.Get("q")
	input := wfa.New()
	input.SetInitialState(p, one().Zero())
	input.AddFinalState(q, one().Zero())
	input.AddTrans(p, a, q, one())
	input.AddTrans(p, b, q, one())

	out, err := w.PostStar(context.Background(), input)
	require.NoError(t, err)

	// configKey(p,e) == in.Pair(p,e); documented in wpds/configuration.go.
	g := in.Pair(p, e)
	gstate, ok := out.GetState(g)
	require.True(t, ok, "exactly one mid-state must exist for (p,e)")

	_, ok = out.Find(g, r1, q)
	require.True(t, ok)
	_, ok = out.Find(g, r2, q)
	require.True(t, ok)

	require.True(t, gstate.Quasi.Equal(w1.Combine(w2)), "mid-state quasi weight must combine both rules' contributions")
}

// Property 4 (spec.md §8): adding a rule never decreases an output
// transition's weight under combine, i.e. re-saturating with the
// additional rule can only grow (in the combine partial order) what
// was already reachable.
func TestPostStarMonotonicityUnderAddedRule(t *testing.T) {
	in := key.New()
	p, q := in.Get("p"), in.Get("q")
	a := in.Get("a")

	w1 := genkill.New(keyset.Of(in.Get("x")), keyset.Set[key.Key]{})

	input := wfa.New()
	input.SetInitialState(p, one().Zero())
	input.AddFinalState(q, one().Zero())
	input.AddTrans(p, a, q, one())

	before := newWPDS(t, in)
	_, err := before.AddStepRule(p, a, p, a, w1)
	require.NoError(t, err)
	outBefore, err := before.PostStar(context.Background(), input)
	require.NoError(t, err)
	trBefore, ok := outBefore.Find(p, a, q)
	require.True(t, ok)

	afterW := newWPDS(t, in)
	_, err = afterW.AddStepRule(p, a, p, a, w1)
	require.NoError(t, err)
	w2 := genkill.New(keyset.Set[key.Key]{}, keyset.Of(in.Get("y")))
	_, err = afterW.AddStepRule(p, a, p, a, w2)
	require.NoError(t, err)

	input2 := wfa.New()
	input2.SetInitialState(p, one().Zero())
	input2.AddFinalState(q, one().Zero())
	input2.AddTrans(p, a, q, one())

	outAfter, err := afterW.PostStar(context.Background(), input2)
	require.NoError(t, err)
	trAfter, ok := outAfter.Find(p, a, q)
	require.True(t, ok)

	combined := trAfter.Weight.Combine(trBefore.Weight)
	require.True(t, combined.Equal(trAfter.Weight), "combine(after,before) must equal after: after didn't lose any of before's weight")
}

// Property 6 (spec.md §8): every output transition derived from rule r
// carries r's left-hand configuration as its Config back-pointer.
func TestSaturationLinksTransitionsToOriginatingConfig(t *testing.T) {
	in := key.New()
	w := newWPDS(t, in)

	p, q := in.Get("p"), in.Get("q")
	a, b := in.Get("a"), in.Get("b")

	rule, err := w.AddStepRule(p, a, q, b, one())
	require.NoError(t, err)

	accept := in.Get("accept")
	input := wfa.New()
	input.SetInitialState(q, one().Zero())
	input.AddFinalState(accept, one().Zero())
	input.AddTrans(q, b, accept, one())

	out, err := w.PreStar(context.Background(), input)
	require.NoError(t, err)

	tr, ok := out.Find(p, a, accept)
	require.True(t, ok)

	cfg, ok := tr.Config.(*wpds.Configuration)
	require.True(t, ok, "transition produced by a rule must carry a *wpds.Configuration back-pointer")
	require.Same(t, rule.From, cfg)
}
