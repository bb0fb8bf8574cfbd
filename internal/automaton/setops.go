package automaton

import "errors"

// ErrPartitionMismatch reports two DFAs built over different alphabet
// partitions. Product constructions are only meaningful over one shared
// partition.
var ErrPartitionMismatch = errors.New("automaton: dfas built over different alphabet partitions")

// Product walks two same-partition DFAs in lockstep and combines their
// acceptance with op. Transition functions are total, so every pair has a
// successor on every class and the result is total as well.
func Product(a, b *DFA, op func(bool, bool) bool) (*DFA, error) {
	if a.part != b.part {
		return nil, ErrPartitionMismatch
	}
	k := a.part.Size()

	type pair struct{ x, y int }
	index := map[pair]int{}
	var pairs []pair
	intern := func(p pair) int {
		if id, ok := index[p]; ok {
			return id
		}
		id := len(pairs)
		index[p] = id
		pairs = append(pairs, p)
		return id
	}

	d := &DFA{part: a.part}
	intern(pair{a.start, b.start})
	for i := 0; i < len(pairs); i++ {
		p := pairs[i]
		row := make([]int, k)
		for c := 0; c < k; c++ {
			row[c] = intern(pair{a.trans[p.x][c], b.trans[p.y][c]})
		}
		d.trans = append(d.trans, row)
		d.accept = append(d.accept, op(a.accept[p.x], b.accept[p.y]))
	}
	return d, nil
}

// UnionDFA accepts what either DFA accepts.
func UnionDFA(a, b *DFA) (*DFA, error) {
	return Product(a, b, func(x, y bool) bool { return x || y })
}

// IntersectDFA accepts what both DFAs accept.
func IntersectDFA(a, b *DFA) (*DFA, error) {
	return Product(a, b, func(x, y bool) bool { return x && y })
}

// DifferenceDFA accepts what a accepts and b rejects.
func DifferenceDFA(a, b *DFA) (*DFA, error) {
	return Product(a, b, func(x, y bool) bool { return x && !y })
}

// Complement flips acceptance. Sound because the transition function is
// total over the partition.
func Complement(d *DFA) *DFA {
	out := &DFA{
		part:   d.part,
		start:  d.start,
		trans:  d.trans,
		accept: make([]bool, len(d.accept)),
	}
	for i, acc := range d.accept {
		out.accept[i] = !acc
	}
	return out
}

// IsEmpty reports whether the DFA accepts no string at all.
func IsEmpty(d *DFA) bool {
	seen := make([]bool, len(d.trans))
	seen[d.start] = true
	queue := []int{d.start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if d.accept[s] {
			return false
		}
		for _, t := range d.trans[s] {
			if !seen[t] {
				seen[t] = true
				queue = append(queue, t)
			}
		}
	}
	return true
}
