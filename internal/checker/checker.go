// Package checker runs the full comparison pipeline over two rule blocks:
// parse both, partition the alphabet jointly, compile and minimize both
// DFAs, then walk their product for equivalence.
package checker

import (
	"lexequiv/internal/alphabet"
	"lexequiv/internal/automaton"
	"lexequiv/internal/pattern"
)

// CompileBlocks parses both blocks and builds their minimized DFAs over a
// single shared partition.
func CompileBlocks(left, right string) (*automaton.DFA, *automaton.DFA, error) {
	lt, err := pattern.ParseBlock(left)
	if err != nil {
		return nil, nil, err
	}
	rt, err := pattern.ParseBlock(right)
	if err != nil {
		return nil, nil, err
	}

	// one partition for both sides, so the DFAs share an alphabet
	part := alphabet.Build(lt, rt)

	ld, err := automaton.Build(lt, part)
	if err != nil {
		return nil, nil, err
	}
	rd, err := automaton.Build(rt, part)
	if err != nil {
		return nil, nil, err
	}
	return automaton.Minimize(ld), automaton.Minimize(rd), nil
}

// CompareBlocks reports whether the two blocks recognize the same language
// and, if not, the shortest string accepted by each side only.
func CompareBlocks(left, right string) (automaton.Result, error) {
	ld, rd, err := CompileBlocks(left, right)
	if err != nil {
		return automaton.Result{}, err
	}
	return automaton.Compare(ld, rd)
}
