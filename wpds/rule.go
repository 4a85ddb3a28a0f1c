package wpds

import (
	"github.com/luxfi/wpds/key"
	"github.com/luxfi/wpds/semiring"
)

// Kind identifies one of the three rule shapes a WPDS rule may take
// (spec §3).
type Kind int

const (
	// Pop is (p,γ) → (p′,ε).
	Pop Kind = iota
	// Step is (p,γ) → (p′,γ′).
	Step
	// Push is (p,γ) → (p′,γ′γ″).
	Push
)

// Rule is one weighted WPDS rewrite rule. From and To are the
// configurations it connects; Stack2 is the second pushed symbol for a
// Push rule (key.Epsilon otherwise).
type Rule struct {
	From, To *Configuration
	Stack2   key.Key
	Weight   semiring.Element
}

// Kind reports which of the three shapes r is.
func (r *Rule) Kind() Kind {
	switch {
	case r.To.Stack == key.Epsilon:
		return Pop
	case r.Stack2 == key.Epsilon:
		return Step
	default:
		return Push
	}
}

// FromState, FromStack, ToState, ToStack1 expose the rule's four keys
// without requiring the caller to dereference From/To directly.
func (r *Rule) FromState() key.Key { return r.From.State }
func (r *Rule) FromStack() key.Key { return r.From.Stack }
func (r *Rule) ToState() key.Key   { return r.To.State }
func (r *Rule) ToStack1() key.Key  { return r.To.Stack }
