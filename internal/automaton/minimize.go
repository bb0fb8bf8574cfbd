package automaton

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Minimize returns the smallest DFA recognizing the same language:
// unreachable states are dropped, then Moore partition refinement splits
// the {accepting, rejecting} blocks until no transition distinguishes two
// states of one block. Not required for a correct equivalence answer, but
// it bounds the product walk.
func Minimize(d *DFA) *DFA {
	k := d.part.Size()
	n := len(d.trans)

	reach := bitset.New(uint(n))
	reach.Set(uint(d.start))
	queue := []int{d.start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for c := 0; c < k; c++ {
			t := d.trans[s][c]
			if !reach.Test(uint(t)) {
				reach.Set(uint(t))
				queue = append(queue, t)
			}
		}
	}

	// initial blocks: accepting vs rejecting, ids dense in state order
	block := make([]int, n)
	for i := range block {
		block[i] = -1
	}
	byAccept := map[bool]int{}
	for i, ok := reach.NextSet(0); ok; i, ok = reach.NextSet(i + 1) {
		id, seen := byAccept[d.accept[i]]
		if !seen {
			id = len(byAccept)
			byAccept[d.accept[i]] = id
		}
		block[i] = id
	}
	count := len(byAccept)

	for {
		next := map[string]int{}
		newBlock := make([]int, n)
		for i := range newBlock {
			newBlock[i] = -1
		}
		for i := 0; i < n; i++ {
			if block[i] < 0 {
				continue
			}
			var sb strings.Builder
			fmt.Fprintf(&sb, "%d", block[i])
			for c := 0; c < k; c++ {
				fmt.Fprintf(&sb, ",%d", block[d.trans[i][c]])
			}
			sig := sb.String()
			id, ok := next[sig]
			if !ok {
				id = len(next)
				next[sig] = id
			}
			newBlock[i] = id
		}
		stable := len(next) == count
		block = newBlock
		count = len(next)
		if stable {
			break
		}
	}

	// one representative row per block
	trans := make([][]int, count)
	accept := make([]bool, count)
	for i := 0; i < n; i++ {
		bl := block[i]
		if bl < 0 || trans[bl] != nil {
			continue
		}
		row := make([]int, k)
		for c := 0; c < k; c++ {
			row[c] = block[d.trans[i][c]]
		}
		trans[bl] = row
		accept[bl] = d.accept[i]
	}

	return &DFA{
		part:   d.part,
		start:  block[d.start],
		trans:  trans,
		accept: accept,
	}
}
