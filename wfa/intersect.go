package wfa

import (
	"github.com/luxfi/wpds/key"
	"github.com/luxfi/wpds/semiring"
)

// WeightMaker combines a weight from each side of an Intersect into the
// product WFA's transition weight (spec §4.8, §6's "weight maker
// plug-in").
type WeightMaker interface {
	Make(a, b semiring.Element) semiring.Element
}

// WeightMakerFunc adapts a plain function to WeightMaker.
type WeightMakerFunc func(a, b semiring.Element) semiring.Element

// Make calls f.
func (f WeightMakerFunc) Make(a, b semiring.Element) semiring.Element { return f(a, b) }

// KeepLeft keeps the left-hand weight, discarding the right. Used by
// spec §8 testable property 5 (restrict_to_left).
var KeepLeft = WeightMakerFunc(func(a, b semiring.Element) semiring.Element { return a })

// KeepBoth combines (extends) both sides' weights, matching the weight
// maker the original source's intersect(WFA&) overload uses. Intersect
// has no default; callers pass a WeightMaker explicitly.
var KeepBoth = WeightMakerFunc(func(a, b semiring.Element) semiring.Element { return a.Extend(b) })

// Intersect computes the product of a and other under wmaker (spec
// §4.8): states are interned pairs, transitions are emitted for every
// pair of same-stack-symbol transitions from each side, the initial
// state is the pair of initials, and final states are the pairwise
// cross product.
//
// To avoid a quadratic scan, other's transitions are hashed by stack
// symbol once; a's kpmap buckets (which already share one stack symbol
// per bucket) are then probed against that hash a single time per
// bucket, per spec §4.8's indexing requirement.
func (a *WFA) Intersect(in *key.Interner, wmaker WeightMaker, other *WFA) *WFA {
	byStack := make(map[key.Key][]*Transition)
	other.ForEach(func(t *Transition) {
		byStack[t.Stack] = append(byStack[t.Stack], t)
	})

	dest := New()

	aInitState, _ := a.GetState(a.initial)
	bInitState, _ := other.GetState(other.initial)
	zero := wmaker.Make(aInitState.Weight.Zero(), bInitState.Weight.Zero())

	destInit := in.Pair(a.initial, other.initial)
	dest.SetInitialState(destInit, zero.Zero())

	for _, f1 := range a.GetFinalStates() {
		for _, f2 := range other.GetFinalStates() {
			dest.AddFinalState(in.Pair(f1, f2), zero.Zero())
		}
	}

	seen := make(map[kpKey]bool)
	a.ForEach(func(t *Transition) {
		kp := kpKey{t.From, t.Stack}
		if seen[kp] {
			return
		}
		seen[kp] = true

		bucketA := a.KPBucket(t.From, t.Stack)
		bucketB := byStack[t.Stack]
		for _, ta := range bucketA {
			for _, tb := range bucketB {
				fromKey := in.Pair(ta.From, tb.From)
				toKey := in.Pair(ta.To, tb.To)
				w := wmaker.Make(ta.Weight, tb.Weight)
				dest.AddTrans(fromKey, ta.Stack, toKey, w)
			}
		}
	})

	dest.SetQuery(a.query)
	return dest
}
