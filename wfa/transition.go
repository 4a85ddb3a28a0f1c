package wfa

import (
	"github.com/luxfi/wpds/key"
	"github.com/luxfi/wpds/semiring"
)

// Transition is a weighted edge (From,Stack,To,Weight) in a WFA. Its
// identity is the (From,Stack,To) triple; Weight is mutable and is
// combined into the existing weight when a duplicate is inserted
// (spec §3).
//
// Delta and Config realize the "linked transition" data described by
// spec §3: Delta is the accumulated weight change not yet propagated to
// successors, and Config is an opaque back-pointer to whatever produced
// this transition (the wpds package stores a *wpds.Configuration here;
// plain WFAs — hand-built inputs, intersection results — leave it nil).
// Go has no subclassing, so rather than layering a distinct
// "LinkedTrans" type over a plain one (as the C++ source does), every
// Transition carries these fields, unused by clients that don't need
// them.
type Transition struct {
	From, Stack, To key.Key
	Weight          semiring.Element
	Delta           semiring.Element
	Config          interface{}

	// modified doubles as the spec §4.3 "modified" flag (set whenever
	// Weight changes, read by callers that only want to propagate
	// dirty transitions) and the spec §4.2 "on worklist" flag consulted
	// by worklist.Put for dedup-without-scanning. In the source these
	// are the same bit: a transition is queued if and only if it is
	// modified, and popping it is what the engine uses to mean "no
	// longer dirty".
	modified bool
}

// OnWorklist implements worklist.Queued.
func (t *Transition) OnWorklist() bool { return t.modified }

// SetOnWorklist implements worklist.Queued.
func (t *Transition) SetOnWorklist(v bool) { t.modified = v }

// Modified reports whether this transition's weight has changed since
// it was last consumed by a saturation loop.
func (t *Transition) Modified() bool { return t.modified }

// key pair used to index transitions by (From,Stack) in kpmap.
type kpKey struct {
	from, stack key.Key
}

// State is a WFA vertex: a weight/delta pair used by PathSummary, an
// optional quasi weight used by the post* mid-state trick (spec §4.6),
// and the list of transitions outgoing from this state.
type State struct {
	Name   key.Key
	Out    []*Transition
	Weight semiring.Element
	Delta  semiring.Element
	Quasi  semiring.Element

	queued bool
}

// OnWorklist implements worklist.Queued.
func (s *State) OnWorklist() bool { return s.queued }

// SetOnWorklist implements worklist.Queued.
func (s *State) SetOnWorklist(v bool) { s.queued = v }
