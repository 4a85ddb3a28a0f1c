// Package genkill provides the gen/kill semiring used by dataflow
// analyses built on the wpds engine: a weight represents the function
// λS.(S ∖ K) ∪ G, normalized so that K ∩ G = ∅.
//
// Grounded on original_source/AddOns/Domains/Source/wali/domains/
// genkill/GenKillBase.hpp.
package genkill

import (
	"fmt"

	"github.com/luxfi/wpds/internal/keyset"
	"github.com/luxfi/wpds/key"
	"github.com/luxfi/wpds/semiring"
)

// Weight is a gen/kill transformer λS.(S∖Kill)∪Gen, or the special zero
// value (isZero true), which does not correspond to any (Kill,Gen) pair.
type Weight struct {
	kill, gen keyset.Set[key.Key]
	isZero    bool
}

var _ semiring.Element = Weight{}
var _ semiring.QuasiOne = Weight{}

// zeroValue is the unique zero representative.
var zeroValue = Weight{isZero: true}

// oneValue is the unique one representative: the identity transform.
var oneValue = Weight{kill: keyset.Set[key.Key]{}, gen: keyset.Set[key.Key]{}}

// New builds a normalized gen/kill weight from kill and gen sets,
// applying the K∩G=∅ normalization (kill ∖ gen, gen) and collapsing to
// the unique One representative when both sets end up empty.
func New(kill, gen keyset.Set[key.Key]) Weight {
	k := keyset.Diff(kill, gen)
	if k.Len() == 0 && gen.Len() == 0 {
		return oneValue
	}
	return Weight{kill: k, gen: gen}
}

// Kill returns the kill set. Panics if called on Zero.
func (w Weight) Kill() keyset.Set[key.Key] {
	if w.isZero {
		panic("genkill: Kill() on zero")
	}
	return w.kill
}

// Gen returns the gen set. Panics if called on Zero.
func (w Weight) Gen() keyset.Set[key.Key] {
	if w.isZero {
		panic("genkill: Gen() on zero")
	}
	return w.gen
}

// Apply evaluates the transformer on input: (input ∖ Kill) ∪ Gen.
func (w Weight) Apply(input keyset.Set[key.Key]) keyset.Set[key.Key] {
	if w.isZero {
		panic("genkill: Apply() on zero")
	}
	return keyset.Union(keyset.Diff(input, w.kill), w.gen)
}

// Zero returns the unique zero representative.
func (w Weight) Zero() semiring.Element { return zeroValue }

// One returns the unique one (identity transform) representative.
func (w Weight) One() semiring.Element { return oneValue }

// Extend composes transformers: this then other, i.e. other∘this.
// (K1,G1) ⊗ (K2,G2) = (K1∪K2, (G1∖K2)∪G2).
func (w Weight) Extend(other semiring.Element) semiring.Element {
	o := other.(Weight)
	if w.isZero || o.isZero {
		return zeroValue
	}
	if w.Equal(oneValue) {
		return o
	}
	if o.Equal(oneValue) {
		return w
	}
	k := keyset.Union(w.kill, o.kill)
	g := keyset.Union(keyset.Diff(w.gen, o.kill), o.gen)
	return New(k, g)
}

// Combine joins two transformers pointwise: (K1,G1) ⊕ (K2,G2) =
// (K1∩K2, G1∪G2).
func (w Weight) Combine(other semiring.Element) semiring.Element {
	o := other.(Weight)
	if w.isZero {
		return o
	}
	if o.isZero {
		return w
	}
	k := keyset.Intersect(w.kill, o.kill)
	g := keyset.Union(w.gen, o.gen)
	return New(k, g)
}

// Equal reports structural equality; Zero compares equal only to Zero.
func (w Weight) Equal(other semiring.Element) bool {
	o, ok := other.(Weight)
	if !ok {
		return false
	}
	if w.isZero || o.isZero {
		return w.isZero == o.isZero
	}
	return keyset.Equal(w.kill, o.kill) && keyset.Equal(w.gen, o.gen)
}

// Delta returns (new⊕old, new) — gen/kill weights have no cheaper
// difference representation than the new value itself (spec §3).
func (w Weight) Delta(old semiring.Element) (combined, diff semiring.Element) {
	return w.Combine(old), w
}

// QuasiOne returns One(); the gen/kill domain needs no special
// mid-state right-identity beyond the ordinary multiplicative identity.
func (w Weight) QuasiOne() semiring.Element { return oneValue }

// String renders the weight for debugging.
func (w Weight) String() string {
	if w.isZero {
		return "<zero>"
	}
	if w.Equal(oneValue) {
		return "<one>"
	}
	return fmt.Sprintf("<\\S.(S-%v)U%v>", w.kill.List(), w.gen.List())
}
