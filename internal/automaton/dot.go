package automaton

import (
	"fmt"
	"io"

	"lexequiv/internal/alphabet"
)

// WriteDot prints a Graphviz rendering of the DFA. Edges into one target
// are merged and labelled with the class representatives they carry.
func WriteDot(w io.Writer, d *DFA) {
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "    rankdir=LR;")
	for s := 0; s < len(d.trans); s++ {
		shape := "circle"
		if d.accept[s] {
			shape = "doublecircle"
		}
		fmt.Fprintf(w, "    q%d [shape=%s];\n", s, shape)

		byTarget := map[int][]rune{}
		for c := 0; c < d.part.Size(); c++ {
			t := d.trans[s][c]
			byTarget[t] = append(byTarget[t], d.part.Rep(alphabet.ClassID(c)))
		}
		for t := 0; t < len(d.trans); t++ {
			reps, ok := byTarget[t]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "    q%d -> q%d [label=%q];\n", s, t, string(reps))
		}
	}
	fmt.Fprintf(w, "    _start [shape=point]; _start -> q%d;\n", d.start)
	fmt.Fprintln(w, "}")
}
