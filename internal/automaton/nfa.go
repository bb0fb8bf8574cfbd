package automaton

import (
	"fmt"

	"lexequiv/internal/alphabet"
	"lexequiv/internal/pattern"
)

// ConstructionError reports a pattern tree that violates the builder's
// contract. Parsing already rejects these shapes; this is the backstop for
// trees assembled by hand.
type ConstructionError struct {
	Reason string
}

func (e *ConstructionError) Error() string { return "automaton: " + e.Reason }

type nfaState struct {
	id     int
	edges  []nfaEdge
	accept bool
}

type nfaEdge struct {
	eps   bool
	class alphabet.ClassID
	to    *nfaState
}

// frag is a partial NFA: a start state plus the dangling states that get
// ε-patched to whatever comes next.
type frag struct {
	start *nfaState
	outs  []*nfaState
}

// nfaBuilder owns all states of one construction. State ids are scoped to
// the builder, not the process.
type nfaBuilder struct {
	part   *alphabet.Partition
	states []*nfaState
}

func (b *nfaBuilder) newState() *nfaState {
	s := &nfaState{id: len(b.states)}
	b.states = append(b.states, s)
	return s
}

func patchOuts(outs []*nfaState, to *nfaState) {
	for _, s := range outs {
		s.edges = append(s.edges, nfaEdge{eps: true, to: to})
	}
}

// expandRepeats rewrites every Repeat{child, m, n} into child^m followed
// by a nest of optionals, child^m (child (child ...)?)?, so every count
// between m and n stays reachable. The result contains no Repeat nodes.
func expandRepeats(n pattern.Node) (pattern.Node, error) {
	switch t := n.(type) {
	case *pattern.Literal, *pattern.Class:
		return n, nil
	case *pattern.Concat:
		l, err := expandRepeats(t.Left)
		if err != nil {
			return nil, err
		}
		r, err := expandRepeats(t.Right)
		if err != nil {
			return nil, err
		}
		return &pattern.Concat{Left: l, Right: r}, nil
	case *pattern.Union:
		alts := make([]pattern.Node, len(t.Alts))
		for i, a := range t.Alts {
			c, err := expandRepeats(a)
			if err != nil {
				return nil, err
			}
			alts[i] = c
		}
		return &pattern.Union{Alts: alts}, nil
	case *pattern.Optional:
		c, err := expandRepeats(t.Child)
		if err != nil {
			return nil, err
		}
		return &pattern.Optional{Child: c}, nil
	case *pattern.Repeat:
		child, err := expandRepeats(t.Child)
		if err != nil {
			return nil, err
		}
		if t.Min < 0 || t.Max < t.Min {
			return nil, &ConstructionError{Reason: fmt.Sprintf("repeat bounds {%d,%d} out of order", t.Min, t.Max)}
		}
		var out pattern.Node
		for i := 0; i < t.Max-t.Min; i++ {
			if out == nil {
				out = &pattern.Optional{Child: child}
			} else {
				out = &pattern.Optional{Child: &pattern.Concat{Left: child, Right: out}}
			}
		}
		for i := 0; i < t.Min; i++ {
			if out == nil {
				out = child
			} else {
				out = &pattern.Concat{Left: child, Right: out}
			}
		}
		if out == nil {
			// {0,0} matches exactly the empty string
			out = &pattern.Literal{}
		}
		return out, nil
	default:
		return nil, &ConstructionError{Reason: fmt.Sprintf("unknown pattern node %T", n)}
	}
}

func (b *nfaBuilder) build(n pattern.Node) (frag, error) {
	switch t := n.(type) {
	case *pattern.Literal:
		cur := b.newState()
		f := frag{start: cur}
		for _, set := range t.Sets {
			next := b.newState()
			ids, err := b.part.ClassesFor(set)
			if err != nil {
				return frag{}, err
			}
			for _, id := range ids {
				cur.edges = append(cur.edges, nfaEdge{class: id, to: next})
			}
			cur = next
		}
		f.outs = []*nfaState{cur}
		return f, nil

	case *pattern.Class:
		s1, s2 := b.newState(), b.newState()
		ids, err := b.part.ClassesFor(t.Set)
		if err != nil {
			return frag{}, err
		}
		for _, id := range ids {
			s1.edges = append(s1.edges, nfaEdge{class: id, to: s2})
		}
		return frag{start: s1, outs: []*nfaState{s2}}, nil

	case *pattern.Concat:
		f1, err := b.build(t.Left)
		if err != nil {
			return frag{}, err
		}
		f2, err := b.build(t.Right)
		if err != nil {
			return frag{}, err
		}
		patchOuts(f1.outs, f2.start)
		return frag{start: f1.start, outs: f2.outs}, nil

	case *pattern.Union:
		s := b.newState()
		var outs []*nfaState
		for _, alt := range t.Alts {
			f, err := b.build(alt)
			if err != nil {
				return frag{}, err
			}
			s.edges = append(s.edges, nfaEdge{eps: true, to: f.start})
			outs = append(outs, f.outs...)
		}
		return frag{start: s, outs: outs}, nil

	case *pattern.Optional:
		s := b.newState()
		f, err := b.build(t.Child)
		if err != nil {
			return frag{}, err
		}
		s.edges = append(s.edges, nfaEdge{eps: true, to: f.start})
		return frag{start: s, outs: append(f.outs, s)}, nil

	case *pattern.Repeat:
		return frag{}, &ConstructionError{Reason: "repeat not expanded before construction"}

	default:
		return frag{}, &ConstructionError{Reason: fmt.Sprintf("unknown pattern node %T", n)}
	}
}
