package wpds

import (
	"fmt"
	"strings"

	"github.com/luxfi/log"
	"github.com/luxfi/wpds/internal/keyset"
	"github.com/luxfi/wpds/key"
	"github.com/luxfi/wpds/semiring"
	"github.com/luxfi/wpds/wfa"
	"github.com/luxfi/wpds/worklist"
)

// WPDS is a weighted pushdown system: an interned set of configurations
// and rules, plus the r2hash index that maps a type-2 rule's second
// push symbol to the rules ending in it (spec §3). The zero value is
// not usable; construct one with New.
type WPDS struct {
	interner *key.Interner
	configs  map[key.Key]*Configuration
	// zeroConfigs holds every configuration that is the right-hand side
	// of some Pop rule, i.e. a valid target for a (p,γ)→(p′,ε) step
	// (spec §4.4's "zero-configs").
	zeroConfigs keyset.Set[key.Key]
	// r2hash[γ″] is every Push rule ending in γ″ (spec §4.4/§4.5 step 3).
	r2hash map[key.Key][]*Rule

	wrapper     Wrapper
	newWorklist func() worklist.Worklist[*wfa.Transition]
	maxSteps    int
	log         log.Logger
	metrics     *metrics
}

// New returns an empty WPDS over the given key interner, configured by
// opts (see Options).
func New(in *key.Interner, opts Options) *WPDS {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	newWorklist := opts.NewWorklist
	if newWorklist == nil {
		newWorklist = func() worklist.Worklist[*wfa.Transition] {
			return worklist.NewFIFO[*wfa.Transition]()
		}
	}
	return &WPDS{
		interner:    in,
		configs:     make(map[key.Key]*Configuration),
		zeroConfigs: keyset.Set[key.Key]{},
		r2hash:      make(map[key.Key][]*Rule),
		wrapper:     opts.Wrapper,
		newWorklist: newWorklist,
		maxSteps:    opts.MaxSteps,
		log:         logger,
		metrics:     newMetrics(opts.Registerer),
	}
}

// config returns the interned configuration (state,stack), creating it
// if necessary.
func (w *WPDS) config(state, stack key.Key) *Configuration {
	k := configKey(w.interner, state, stack)
	if c, ok := w.configs[k]; ok {
		return c
	}
	c := &Configuration{State: state, Stack: stack}
	w.configs[k] = c
	return c
}

// Config returns the configuration (state,stack) if it has been
// created by a prior AddRule call or by a PreStar/PostStar run (which
// creates configurations for the transitions it links), or (nil,false)
// otherwise.
func (w *WPDS) Config(state, stack key.Key) (*Configuration, bool) {
	c, ok := w.configs[configKey(w.interner, state, stack)]
	return c, ok
}

// wrapWeight applies the installed Wrapper to a newly supplied rule
// weight, or returns it unchanged if no wrapper is installed.
func (w *WPDS) wrapWeight(weight semiring.Element) semiring.Element {
	if w.wrapper == nil {
		return weight
	}
	return semiring.Check(w.wrapper.WrapRule(weight))
}

// wrapTransWeight applies the installed Wrapper's WrapTrans to a
// transition weight copied from an input WFA during saturation setup
// (spec §4.4's wrapper plug-in), or returns it unchanged if no wrapper
// is installed.
func (w *WPDS) wrapTransWeight(weight semiring.Element) semiring.Element {
	if w.wrapper == nil {
		return weight
	}
	return semiring.Check(w.wrapper.WrapTrans(weight))
}

// addRule is the single entry point behind AddPopRule/AddStepRule/
// AddPushRule (spec §4.4): looks up or creates the from/to
// configurations, tracks zero-configs for Pop rules, creates (or
// combines into an existing) rule, and links it into from.Forward,
// to.Backward, and — for Push rules — r2hash[stack2].
func (w *WPDS) addRule(fromState, fromStack, toState, toStack1, toStack2 key.Key, weight semiring.Element) (*Rule, error) {
	if fromState == key.Epsilon || fromStack == key.Epsilon || toState == key.Epsilon {
		return nil, fmt.Errorf("%w: rule (%s,%s)->(%s,...)", ErrIllegalKey,
			w.interner.String(fromState), w.interner.String(fromStack), w.interner.String(toState))
	}

	from := w.config(fromState, fromStack)
	to := w.config(toState, toStack1)

	if toStack1 == key.Epsilon {
		if toStack2 != key.Epsilon {
			return nil, fmt.Errorf("%w: pop rule must not carry a second push symbol", ErrIllegalKey)
		}
		w.zeroConfigs.Add(configKey(w.interner, toState, toStack1))
	}

	weight = w.wrapWeight(weight)

	for _, r := range from.Forward {
		if r.To == to && r.Stack2 == toStack2 {
			r.Weight = r.Weight.Combine(weight)
			return r, nil
		}
	}

	r := &Rule{From: from, To: to, Stack2: toStack2, Weight: weight}
	from.Forward = append(from.Forward, r)
	to.Backward = append(to.Backward, r)
	if toStack2 != key.Epsilon {
		w.r2hash[toStack2] = append(w.r2hash[toStack2], r)
	}
	return r, nil
}

// AddPopRule adds a type-0 rule (p,γ) → (p′,ε).
func (w *WPDS) AddPopRule(p, gamma, pPrime key.Key, weight semiring.Element) (*Rule, error) {
	return w.addRule(p, gamma, pPrime, key.Epsilon, key.Epsilon, weight)
}

// AddStepRule adds a type-1 rule (p,γ) → (p′,γ′).
func (w *WPDS) AddStepRule(p, gamma, pPrime, gammaPrime key.Key, weight semiring.Element) (*Rule, error) {
	return w.addRule(p, gamma, pPrime, gammaPrime, key.Epsilon, weight)
}

// AddPushRule adds a type-2 rule (p,γ) → (p′,γ′γ″).
func (w *WPDS) AddPushRule(p, gamma, pPrime, gammaPrime, gammaDoublePrime key.Key, weight semiring.Element) (*Rule, error) {
	return w.addRule(p, gamma, pPrime, gammaPrime, gammaDoublePrime, weight)
}

// ForEach calls fn once for every rule in the WPDS (spec §4.9's functor
// traversal, realized as a plain callback).
func (w *WPDS) ForEach(fn func(*Rule)) {
	for _, c := range w.configs {
		for _, r := range c.Forward {
			fn(r)
		}
	}
}

// String renders every rule for debugging, in the style of the
// original source's WPDS::print/marshall.
func (w *WPDS) String() string {
	var b strings.Builder
	w.ForEach(func(r *Rule) {
		fmt.Fprintf(&b, "<%s, %s> -> <%s, %s", w.interner.String(r.FromState()), w.interner.String(r.FromStack()),
			w.interner.String(r.ToState()), w.interner.String(r.ToStack1()))
		if r.Stack2 != key.Epsilon {
			fmt.Fprintf(&b, " %s", w.interner.String(r.Stack2))
		}
		fmt.Fprintf(&b, "> weight=%v\n", r.Weight)
	})
	return b.String()
}
