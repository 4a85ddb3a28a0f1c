package wfa

import (
	"github.com/luxfi/wpds/key"
	"github.com/luxfi/wpds/semiring"
	"github.com/luxfi/wpds/worklist"
)

// PathSummary computes, for every state q, the combined weight of every
// path from q to an accepting state (spec §4.7), assuming transition
// weights have already been saturated by PreStar/PostStar. It mutates
// each State's Weight in place and returns nothing; read the result via
// GetState.
//
// Two runs over the same WFA produce identical weights regardless of
// the worklist's draining order, because Combine is idempotent (spec
// §5).
func (a *WFA) PathSummary(wl worklist.Worklist[*State]) {
	preds := a.setupPathSummary(wl)

	for !wl.Empty() {
		q := wl.Get()
		delta := q.Delta
		q.Delta = delta.Zero()
		zero := q.Weight.Zero()

		for _, pred := range preds[q.Name] {
			newW := zero
			for _, t := range pred.Out {
				if t.To != q.Name {
					continue
				}
				var extended semiring.Element
				if a.query == Inorder {
					extended = t.Weight.Extend(delta)
				} else {
					extended = delta.Extend(t.Weight)
				}
				newW = newW.Combine(extended)
			}

			combined, diff := newW.Delta(pred.Weight)
			pred.Weight = combined

			if pred.OnWorklist() {
				pred.Delta = pred.Delta.Combine(diff)
				continue
			}
			pred.Delta = diff
			if !diff.Equal(zero) {
				wl.Put(pred)
			}
		}
	}
}

// setupPathSummary seeds the worklist with every final state (weight
// and delta set to One) and every other state at Zero, and builds the
// predecessor index used by the fixpoint loop (spec §4.7's "Setup").
func (a *WFA) setupPathSummary(wl worklist.Worklist[*State]) map[key.Key][]*State {
	preds := make(map[key.Key][]*State)

	for _, s := range a.states {
		s.SetOnWorklist(false)
		if a.IsFinalState(s.Name) {
			one := s.Weight.One()
			s.Weight = one
			s.Delta = one
			wl.Put(s)
		} else {
			zero := s.Weight.Zero()
			s.Weight = zero
			s.Delta = zero
		}

		for _, t := range s.Out {
			preds[t.To] = append(preds[t.To], s)
		}
	}

	return preds
}
