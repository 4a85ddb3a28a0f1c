// Package wfa implements the weighted finite automaton that represents
// a regular set of pushdown configurations (spec §3/§4.3). A WFA is a
// mutable, indexed transition store: transitions are indexed by
// (from,stack) pair, by epsilon target, and by their from-state's
// outgoing list, so addTrans/find/erase and the saturation engine's
// inner loops are all O(1) amortized per lookup.
package wfa

import (
	"fmt"

	"github.com/luxfi/wpds/internal/keyset"
	"github.com/luxfi/wpds/key"
	"github.com/luxfi/wpds/semiring"
)

// Query selects how PathSummary extends a transition weight by the
// accumulated delta: INORDER computes w⊗δ, REVERSE computes δ⊗w. The
// engine never assumes commutativity (spec §9).
type Query int

const (
	Inorder Query = iota
	Reverse
)

// WFA is a mutable, weighted automaton over configurations (p,γ). The
// zero value is not ready for use; construct one with New.
type WFA struct {
	states  map[key.Key]*State
	initial key.Key
	final   keyset.Set[key.Key]

	// kpmap indexes transitions by (from,stack) -> to -> transition,
	// giving Find and the saturation engine's "for every transition
	// (q,γ2,q')" scans O(1) probes (spec §4.3).
	kpmap map[kpKey]map[key.Key]*Transition
	// epsmap indexes epsilon-labelled transitions by their to-state
	// (spec §3), used by post*'s mid-state propagation step.
	epsmap map[key.Key]map[key.Key]*Transition

	query Query
}

// New returns an empty WFA.
func New() *WFA {
	return &WFA{
		states: make(map[key.Key]*State),
		final:  keyset.Set[key.Key]{},
		kpmap:  make(map[kpKey]map[key.Key]*Transition),
		epsmap: make(map[key.Key]map[key.Key]*Transition),
	}
}

// SetQuery sets the orientation used by PathSummary. The default is
// Inorder.
func (a *WFA) SetQuery(q Query) { a.query = q }

// GetQuery returns the current orientation.
func (a *WFA) GetQuery() Query { return a.query }

// SetInitialState designates q as the initial state, creating it with
// zero weight zero if it does not already exist.
func (a *WFA) SetInitialState(q key.Key, zero semiring.Element) {
	a.addState(q, zero)
	a.initial = q
}

// InitialState returns the initial state key.
func (a *WFA) InitialState() key.Key { return a.initial }

// AddFinalState marks q as accepting, creating it with zero weight zero
// if it does not already exist.
func (a *WFA) AddFinalState(q key.Key, zero semiring.Element) {
	a.addState(q, zero)
	a.final.Add(q)
}

// IsFinalState reports whether q is an accepting state.
func (a *WFA) IsFinalState(q key.Key) bool { return a.final.Contains(q) }

// GetStates returns every state key in the WFA (spec §3's Q).
func (a *WFA) GetStates() []key.Key {
	out := make([]key.Key, 0, len(a.states))
	for q := range a.states {
		out = append(out, q)
	}
	return out
}

// GetFinalStates returns every accepting state key.
func (a *WFA) GetFinalStates() []key.Key {
	return a.final.List()
}

// GetState returns the state record for q, or (nil,false) if q is not
// in the WFA (spec §7 UnknownState: "returns a null handle; caller
// checks").
func (a *WFA) GetState(q key.Key) (*State, bool) {
	s, ok := a.states[q]
	return s, ok
}

// addState ensures q exists, creating it with weight/delta zero.
func (a *WFA) addState(q key.Key, zero semiring.Element) *State {
	if s, ok := a.states[q]; ok {
		return s
	}
	s := &State{Name: q, Weight: zero, Delta: zero, Quasi: zero}
	a.states[q] = s
	return s
}

// AddState ensures q exists in the WFA with the given zero weight,
// without adding any transition. Exposed so post*'s mid-state
// pre-allocation (spec §4.6) doesn't need a transition to create a
// state.
func (a *WFA) AddState(q key.Key, zero semiring.Element) *State {
	return a.addState(q, zero)
}

// AddTrans inserts (p,γ,q,w), or combines w into the existing
// transition's weight if one with that (from,stack,to) triple already
// exists (spec §4.3). It returns the resulting transition.
func (a *WFA) AddTrans(p, stack, q key.Key, w semiring.Element) *Transition {
	t := &Transition{From: p, Stack: stack, To: q, Weight: w, Delta: w}
	return a.Insert(t)
}

// Insert is the combine-or-add primitive behind AddTrans, exposed so
// the wpds package can insert a fully-formed, config-linked Transition
// (the "linked transition" of spec §3) in one step instead of building
// one then copying fields over. If a transition with the same
// (From,Stack,To) already exists, its Weight is combined with t.Weight,
// its Delta is combined with t.Weight too (the newly-arrived
// contribution still needs to be propagated), and the existing
// transition (not t) is returned, now marked modified. Otherwise t
// itself is indexed and returned, marked modified.
func (a *WFA) Insert(t *Transition) *Transition {
	zero := semiring.Check(t.Weight).Zero()
	a.addState(t.From, zero)
	a.addState(t.To, zero)

	kp := kpKey{t.From, t.Stack}
	bucket, ok := a.kpmap[kp]
	if ok {
		if existing, ok := bucket[t.To]; ok {
			existing.Weight = existing.Weight.Combine(t.Weight)
			existing.Delta = existing.Delta.Combine(t.Weight)
			existing.modified = true
			return existing
		}
	} else {
		bucket = make(map[key.Key]*Transition)
		a.kpmap[kp] = bucket
	}

	t.modified = true
	bucket[t.To] = t

	from := a.states[t.From]
	from.Out = append(from.Out, t)

	if t.Stack == key.Epsilon {
		toBucket, ok := a.epsmap[t.To]
		if !ok {
			toBucket = make(map[key.Key]*Transition)
			a.epsmap[t.To] = toBucket
		}
		toBucket[t.From] = t
	}

	return t
}

// Find returns the transition (p,γ,q), or (nil,false) if none exists —
// an O(1) lookup via kpmap (spec §4.3).
func (a *WFA) Find(p, stack, q key.Key) (*Transition, bool) {
	bucket, ok := a.kpmap[kpKey{p, stack}]
	if !ok {
		return nil, false
	}
	t, ok := bucket[q]
	return t, ok
}

// EpsTo returns every epsilon-labelled transition ending at q.
func (a *WFA) EpsTo(q key.Key) []*Transition {
	bucket := a.epsmap[q]
	out := make([]*Transition, 0, len(bucket))
	for _, t := range bucket {
		out = append(out, t)
	}
	return out
}

// KPBucket returns every transition sharing the (from,stack) pair —
// used by the saturation engine's type-2 rule handling (spec §4.5
// step 2, type-2).
func (a *WFA) KPBucket(from, stack key.Key) []*Transition {
	bucket := a.kpmap[kpKey{from, stack}]
	out := make([]*Transition, 0, len(bucket))
	for _, t := range bucket {
		out = append(out, t)
	}
	return out
}

// Erase removes the transition (from,stack,to) from every index and
// from its from-state's outgoing list.
func (a *WFA) Erase(from, stack, to key.Key) {
	bucket, ok := a.kpmap[kpKey{from, stack}]
	if !ok {
		return
	}
	t, ok := bucket[to]
	if !ok {
		return
	}
	delete(bucket, to)
	if len(bucket) == 0 {
		delete(a.kpmap, kpKey{from, stack})
	}
	if stack == key.Epsilon {
		if eb, ok := a.epsmap[to]; ok {
			delete(eb, from)
			if len(eb) == 0 {
				delete(a.epsmap, to)
			}
		}
	}
	if s, ok := a.states[from]; ok {
		s.Out = removeTrans(s.Out, t)
	}
}

func removeTrans(out []*Transition, t *Transition) []*Transition {
	for i, cur := range out {
		if cur == t {
			return append(out[:i], out[i+1:]...)
		}
	}
	return out
}

// EraseState removes every transition outgoing from q from all
// indices and clears q's outgoing list. Transitions incoming to q are
// not removed (spec §4.3: "prune does that").
func (a *WFA) EraseState(q key.Key) {
	s, ok := a.states[q]
	if !ok {
		return
	}
	for _, t := range append([]*Transition(nil), s.Out...) {
		a.Erase(t.From, t.Stack, t.To)
	}
	s.Out = nil
}

// ForEach calls fn once for every transition in the WFA (spec §4.9's
// functor traversal, realized as a plain callback rather than a
// functor class hierarchy — idiomatic for Go, and the shape the
// teacher itself uses for single-pass callbacks).
func (a *WFA) ForEach(fn func(*Transition)) {
	for _, bucket := range a.kpmap {
		for _, t := range bucket {
			fn(t)
		}
	}
}

// String renders a short summary for debugging.
func (a *WFA) String() string {
	n := 0
	a.ForEach(func(*Transition) { n++ })
	return fmt.Sprintf("WFA{states=%d, transitions=%d, final=%d}", len(a.states), n, a.final.Len())
}
