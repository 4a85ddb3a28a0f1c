package wfa

import (
	"fmt"
	"io"

	"github.com/luxfi/wpds/key"
)

// WriteDot writes a dotty representation of a to w, for debugging only.
// Per spec §6 the format is not part of any external contract and may
// change across versions.
func (a *WFA) WriteDot(w io.Writer, in *key.Interner) {
	fmt.Fprintln(w, "digraph WFA {")
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintf(w, "  %q [shape=none,label=\"\"];\n", "__start__")
	fmt.Fprintf(w, "  %q -> %q;\n", "__start__", in.String(a.initial))

	for q := range a.states {
		shape := "circle"
		if a.IsFinalState(q) {
			shape = "doublecircle"
		}
		fmt.Fprintf(w, "  %q [shape=%s];\n", in.String(q), shape)
	}

	a.ForEach(func(t *Transition) {
		label := in.String(t.Stack)
		if t.Weight != nil {
			label = fmt.Sprintf("%s / %v", label, t.Weight)
		}
		fmt.Fprintf(w, "  %q -> %q [label=%q];\n", in.String(t.From), in.String(t.To), label)
	})

	fmt.Fprintln(w, "}")
}
