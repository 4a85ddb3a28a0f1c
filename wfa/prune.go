package wfa

import "github.com/luxfi/wpds/key"

// Prune removes every transition that does not lie on some path from
// the initial state to an accepting state.
//
// spec §9 notes the original source's prune is annotated "broken"
// (a single, backward-only pass). This implementation instead does the
// two passes the semantic definition requires: forward reachability
// from the initial state, and backward reachability to any final
// state, keeping only transitions whose endpoints are reachable in
// both directions.
func (a *WFA) Prune() {
	forward := a.reachableForward()
	backward := a.reachableBackward()

	var toErase []*Transition
	a.ForEach(func(t *Transition) {
		if !forward[t.From] || !backward[t.To] {
			toErase = append(toErase, t)
		}
	})
	for _, t := range toErase {
		a.Erase(t.From, t.Stack, t.To)
	}

	for q := range a.states {
		if !forward[q] || !backward[q] {
			delete(a.states, q)
			a.final.Remove(q)
		}
	}
}

// reachableForward returns the set of states reachable from the
// initial state by following transitions forward.
func (a *WFA) reachableForward() map[key.Key]bool {
	visited := map[key.Key]bool{a.initial: true}
	stack := []key.Key{a.initial}
	for len(stack) > 0 {
		n := len(stack) - 1
		q := stack[n]
		stack = stack[:n]
		s, ok := a.states[q]
		if !ok {
			continue
		}
		for _, t := range s.Out {
			if !visited[t.To] {
				visited[t.To] = true
				stack = append(stack, t.To)
			}
		}
	}
	return visited
}

// reachableBackward returns the set of states that can reach some
// final state by following transitions backward.
func (a *WFA) reachableBackward() map[key.Key]bool {
	visited := make(map[key.Key]bool, a.final.Len())
	var stack []key.Key
	for _, f := range a.final.List() {
		visited[f] = true
		stack = append(stack, f)
	}

	// incoming[to] = list of from-states with a transition to `to`.
	incoming := make(map[key.Key][]key.Key)
	a.ForEach(func(t *Transition) {
		incoming[t.To] = append(incoming[t.To], t.From)
	})

	for len(stack) > 0 {
		n := len(stack) - 1
		q := stack[n]
		stack = stack[:n]
		for _, from := range incoming[q] {
			if !visited[from] {
				visited[from] = true
				stack = append(stack, from)
			}
		}
	}
	return visited
}
