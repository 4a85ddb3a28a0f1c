package wpds

import "github.com/luxfi/wpds/semiring"

// Wrapper is an injective weight plug-in that replaces the weight of
// every rule and copied transition with wrapper.Wrap(...) (spec §4.4),
// typically to attach witnesses or trace structure at rule
// introduction. It is external to the core: the core only calls it.
type Wrapper interface {
	// WrapRule returns the weight to store for a newly added rule,
	// given the weight the caller supplied.
	WrapRule(w semiring.Element) semiring.Element
	// WrapTrans returns the weight to store for a transition copied
	// from an input WFA during saturation setup, given its original
	// weight.
	WrapTrans(w semiring.Element) semiring.Element
}
