// Package automaton compiles pattern trees into DFAs over a shared
// alphabet partition and compares them for language equivalence.
package automaton

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"lexequiv/internal/alphabet"
	"lexequiv/internal/pattern"
)

// deadState is the explicit reject sink inserted by determinization, which
// makes every transition function total over the partition's classes.
const deadState = 0

// DFA is a deterministic automaton over alphabet classes: a dense
// transition table trans[state][class], total thanks to the sink.
type DFA struct {
	part   *alphabet.Partition
	start  int
	trans  [][]int
	accept []bool
}

func (d *DFA) NumStates() int { return len(d.trans) }

func (d *DFA) Partition() *alphabet.Partition { return d.part }

// Accepts runs the DFA over a concrete string.
func (d *DFA) Accepts(s string) bool {
	st := d.start
	for _, r := range s {
		st = d.trans[st][d.part.ClassOf(r)]
	}
	return d.accept[st]
}

// Build compiles one pattern tree into a DFA over the shared partition:
// repeat expansion, Thompson construction, then subset construction. The
// intermediate NFA does not outlive this call.
func Build(root pattern.Node, part *alphabet.Partition) (*DFA, error) {
	expanded, err := expandRepeats(root)
	if err != nil {
		return nil, err
	}

	b := &nfaBuilder{part: part}
	f, err := b.build(expanded)
	if err != nil {
		return nil, err
	}
	accept := b.newState()
	accept.accept = true
	patchOuts(f.outs, accept)

	return determinize(b, f.start), nil
}

// determinize is the subset construction. Each DFA state is the ε-closure
// of a set of NFA states, interned by its sorted-id key; transitions with
// no live target fall into the sink.
func determinize(b *nfaBuilder, start *nfaState) *DFA {
	k := b.part.Size()
	d := &DFA{part: b.part}
	d.trans = append(d.trans, make([]int, k)) // sink, self-loops on everything
	d.accept = append(d.accept, false)

	index := map[string]int{}
	var sets []*bitset.BitSet

	intern := func(set *bitset.BitSet) int {
		key := setKey(set)
		if id, ok := index[key]; ok {
			return id
		}
		id := len(d.trans)
		index[key] = id
		d.trans = append(d.trans, make([]int, k))
		d.accept = append(d.accept, hasAccept(b, set))
		sets = append(sets, set)
		return id
	}

	initial := bitset.New(uint(len(b.states)))
	initial.Set(uint(start.id))
	epsClosure(b, initial)
	d.start = intern(initial)

	for i := 0; i < len(sets); i++ {
		set := sets[i]
		id := i + 1 // slot 0 is the sink
		for c := 0; c < k; c++ {
			move := moveOn(b, set, alphabet.ClassID(c))
			if move.None() {
				continue
			}
			epsClosure(b, move)
			d.trans[id][c] = intern(move)
		}
	}
	return d
}

// epsClosure extends set in place with everything reachable over ε-edges.
func epsClosure(b *nfaBuilder, set *bitset.BitSet) {
	var stack []int
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		stack = append(stack, int(i))
	}
	for len(stack) > 0 {
		s := b.states[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		for _, e := range s.edges {
			if e.eps && !set.Test(uint(e.to.id)) {
				set.Set(uint(e.to.id))
				stack = append(stack, e.to.id)
			}
		}
	}
}

func moveOn(b *nfaBuilder, set *bitset.BitSet, c alphabet.ClassID) *bitset.BitSet {
	out := bitset.New(uint(len(b.states)))
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		for _, e := range b.states[i].edges {
			if !e.eps && e.class == c {
				out.Set(uint(e.to.id))
			}
		}
	}
	return out
}

func hasAccept(b *nfaBuilder, set *bitset.BitSet) bool {
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		if b.states[i].accept {
			return true
		}
	}
	return false
}

func setKey(set *bitset.BitSet) string {
	var sb strings.Builder
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		fmt.Fprintf(&sb, "%d,", i)
	}
	return sb.String()
}
