package wpds

import (
	"context"

	"github.com/luxfi/wpds/key"
	"github.com/luxfi/wpds/semiring"
	"github.com/luxfi/wpds/wfa"
)

// PreStar computes the weighted pre* of input (spec §4.5): for every
// transition the saturation loop converges to in the returned WFA, the
// accepted path weights equal the combined weight of every WPDS run
// from that configuration into one accepted by input. input is not
// modified; the returned WFA shares no mutable state with it.
//
// ctx is checked once per worklist pop, so a caller can bound a
// pathological run with a deadline or cancellation (SPEC_FULL.md §5).
// If w was built with a positive Options.MaxSteps and the worklist has
// not drained within that many pops, PreStar returns (nil, ErrOverflow)
// and discards the partial output, per spec.md's SemiringOverflow.
func (w *WPDS) PreStar(ctx context.Context, input *wfa.WFA) (*wfa.WFA, error) {
	out := wfa.New()
	wl := w.newWorklist()

	w.copyAndLink(input, out, wl)

	for ck := range w.zeroConfigs {
		c, ok := w.configs[ck]
		if !ok {
			continue
		}
		for _, r := range c.Backward {
			w.update(out, wl, r.FromState(), r.FromStack(), r.ToState(), r.Weight, r.From)
		}
	}

	steps := 0
	for !wl.Empty() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if w.maxSteps > 0 && steps >= w.maxSteps {
			return nil, semiring.ErrOverflow
		}
		steps++

		t := wl.Get()
		w.metrics.pop()

		cfg, _ := t.Config.(*Configuration)
		delta := t.Delta
		t.Delta = delta.Zero()

		w.log.Debug("prestar pop", "from", w.interner.String(t.From), "stack", w.interner.String(t.Stack), "to", w.interner.String(t.To))

		if cfg != nil {
			for _, r := range cfg.Backward {
				w.prestarHandleRule(out, wl, t, r, delta)
			}
		}

		for _, r := range w.r2hash[t.Stack] {
			tp, ok := out.Find(r.ToState(), r.ToStack1(), t.From)
			if !ok {
				continue
			}
			weight := r.Weight.Extend(tp.Weight).Extend(delta)
			w.update(out, wl, r.FromState(), r.FromStack(), t.To, weight, r.From)
		}
	}

	n := transitionCount(out)
	w.metrics.setTransitions(n)
	w.log.Info("prestar complete", "transitions", n, "pops", steps)
	return out, nil
}

// prestarHandleRule applies one backward rule of t's originating
// configuration during a prestar pop (spec §4.5 step 2), dispatching on
// the rule's shape. delta is the portion of t's weight not yet
// propagated.
func (w *WPDS) prestarHandleRule(out *wfa.WFA, wl worklistPutter, t *wfa.Transition, r *Rule, delta semiring.Element) {
	weight := r.Weight.Extend(delta)
	switch r.Kind() {
	case Push:
		for _, tprime := range out.KPBucket(t.To, r.Stack2) {
			w.update(out, wl, r.FromState(), r.FromStack(), tprime.To, weight.Extend(tprime.Weight), r.From)
		}
	default: // Pop, Step
		w.update(out, wl, r.FromState(), r.FromStack(), t.To, weight, r.From)
	}
}

// PostStar computes the weighted post* of input (spec §4.6): the
// returned WFA accepts, from each configuration reachable by the WPDS
// from one accepted by input, the combined weight of every such run.
// Mid-states are generated on demand via configKey (spec's genKey) so
// a Push rule's intermediate configuration (p′,γ′) is shared across
// every transition that reaches it.
func (w *WPDS) PostStar(ctx context.Context, input *wfa.WFA) (*wfa.WFA, error) {
	out := wfa.New()
	wl := w.newWorklist()

	zero := w.copyAndLink(input, out, wl)
	if zero != nil {
		for _, rules := range w.r2hash {
			for _, r := range rules {
				g := configKey(w.interner, r.ToState(), r.ToStack1())
				out.AddState(g, zero)
			}
		}
	}

	steps := 0
	for !wl.Empty() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if w.maxSteps > 0 && steps >= w.maxSteps {
			return nil, semiring.ErrOverflow
		}
		steps++

		t := wl.Get()
		w.metrics.pop()

		delta := t.Delta
		t.Delta = delta.Zero()

		w.log.Debug("poststar pop", "from", w.interner.String(t.From), "stack", w.interner.String(t.Stack), "to", w.interner.String(t.To))

		if t.Stack != key.Epsilon {
			cfg, _ := t.Config.(*Configuration)
			if cfg != nil {
				for _, r := range cfg.Forward {
					w.poststarHandleRule(out, wl, t, r, delta)
				}
			}
			continue
		}

		s, ok := out.GetState(t.To)
		if !ok {
			continue
		}
		for _, tprime := range append([]*wfa.Transition(nil), s.Out...) {
			weight := tprime.Weight.Extend(delta)
			cfg2 := w.config(t.From, tprime.Stack)
			w.update(out, wl, t.From, tprime.Stack, tprime.To, weight, cfg2)
		}
	}

	n := transitionCount(out)
	w.metrics.setTransitions(n)
	w.log.Info("poststar complete", "transitions", n, "pops", steps)
	return out, nil
}

// poststarHandleRule applies one forward rule of t's originating
// configuration during a poststar pop (spec §4.6 step 2). A Push rule
// routes through the shared mid-state g = genKey(p′,γ′): the
// intermediate transition (g,γ″,q) is recorded with update_prime (it
// never itself re-enters the worklist), the mid-state's quasi weight
// accumulates the new contribution, and an (p′,γ′,g) transition carries
// quasiOne of that accumulated weight onward. If the mid-state
// transition is marked modified, every ε-transition (p″,ε,q) ending at
// t's target q yields an update of (p″,γ″,q) by the mid-state
// transition's pending delta extended by the ε-transition's weight.
func (w *WPDS) poststarHandleRule(out *wfa.WFA, wl worklistPutter, t *wfa.Transition, r *Rule, delta semiring.Element) {
	weight := delta.Extend(r.Weight)
	switch r.Kind() {
	case Pop, Step:
		w.update(out, wl, r.ToState(), r.ToStack1(), t.To, weight, r.To)
	case Push:
		g := configKey(w.interner, r.ToState(), r.ToStack1())
		tprime := w.updatePrime(out, g, r.Stack2, t.To, weight)

		gstate, ok := out.GetState(g)
		if !ok {
			return
		}
		gstate.Quasi = gstate.Quasi.Combine(weight)
		w.update(out, wl, r.ToState(), r.ToStack1(), g, quasiOne(gstate.Quasi), r.To)

		if !tprime.Modified() {
			return
		}
		for _, teps := range out.EpsTo(t.To) {
			cfg := w.config(teps.From, r.Stack2)
			epsWeight := tprime.Delta.Extend(teps.Weight)
			w.update(out, wl, teps.From, r.Stack2, t.To, epsWeight, cfg)
		}
	}
}

// worklistPutter is the minimal surface update/updatePrime rely on,
// satisfied by worklist.Worklist[*wfa.Transition].
type worklistPutter interface {
	Put(*wfa.Transition)
}

// copyAndLink copies every transition of input into out, wrapping its
// weight through w.wrapper if one is installed, linking it to the
// (From,Stack) configuration it is derived from, and enqueueing it —
// the "copy_and_link" setup shared by PreStar and PostStar (spec §4.5/
// §4.6 step 1). It also copies input's initial state, final states, and
// query orientation. It returns the weight of input's initial state
// (a zero element unless that weight was changed, e.g. by PathSummary),
// else the zero of the first copied transition's weight, or nil if
// input has neither an initial state nor any transition.
func (w *WPDS) copyAndLink(input *wfa.WFA, out *wfa.WFA, wl worklistPutter) semiring.Element {
	out.SetQuery(input.GetQuery())

	var zero semiring.Element
	if s, ok := input.GetState(input.InitialState()); ok && s.Weight != nil {
		zero = s.Weight
	}

	input.ForEach(func(t *wfa.Transition) {
		weight := w.wrapTransWeight(t.Weight)
		if zero == nil {
			zero = weight.Zero()
		}
		cfg := w.config(t.From, t.Stack)
		linked := &wfa.Transition{From: t.From, Stack: t.Stack, To: t.To, Weight: weight, Delta: weight, Config: cfg}
		inserted := out.Insert(linked)
		w.metrics.update()
		wl.Put(inserted)
	})

	if zero != nil {
		out.SetInitialState(input.InitialState(), zero)
		for _, f := range input.GetFinalStates() {
			out.AddFinalState(f, zero)
		}
	}

	return zero
}

// update builds a linked transition (spec §3) and inserts it into out,
// enqueueing the result if the insert changed out's state (a fresh
// transition, or a combine that moved an existing one's weight).
func (w *WPDS) update(out *wfa.WFA, wl worklistPutter, from, stack, to key.Key, weight semiring.Element, cfg *Configuration) *wfa.Transition {
	t := &wfa.Transition{From: from, Stack: stack, To: to, Weight: weight, Delta: weight, Config: cfg}
	inserted := out.Insert(t)
	w.metrics.update()
	if inserted.Modified() {
		wl.Put(inserted)
	}
	return inserted
}

// updatePrime is update without the worklist enqueue and without a
// Config back-pointer, used for post*'s mid-state transitions (spec
// §4.6): they feed PathSummary/Intersect like any other transition but
// never themselves drive another round of the fixpoint.
func (w *WPDS) updatePrime(out *wfa.WFA, from, stack, to key.Key, weight semiring.Element) *wfa.Transition {
	t := &wfa.Transition{From: from, Stack: stack, To: to, Weight: weight, Delta: weight}
	inserted := out.Insert(t)
	w.metrics.update()
	return inserted
}

// quasiOne returns w.QuasiOne() if the domain implements the optional
// QuasiOne capability (spec §4.6's mid-state trick), or w itself
// otherwise — a domain that hasn't opted in is read as its own
// identity contribution.
func quasiOne(w semiring.Element) semiring.Element {
	if qo, ok := w.(semiring.QuasiOne); ok {
		return qo.QuasiOne()
	}
	return w
}

func transitionCount(a *wfa.WFA) int {
	n := 0
	a.ForEach(func(*wfa.Transition) { n++ })
	return n
}
