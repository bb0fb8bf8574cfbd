// Package alphabet partitions the character universe into the equivalence
// classes induced by a set of pattern trees. Two characters land in the
// same class only if no literal or bracket class in any of the trees can
// tell them apart, so automata built over the class ids stay small even
// though the underlying universe is unbounded.
package alphabet

import (
	"fmt"
	"sort"
	"strings"

	"lexequiv/internal/pattern"
)

// ClassID indexes a class within a Partition.
type ClassID int

// Partition holds one singleton class per boundary character (a character
// mentioned anywhere in the source trees) plus a single catch-all class
// for every other character. Each class carries a representative used to
// render counterexample strings.
type Partition struct {
	reps  []rune
	index map[rune]ClassID
	other ClassID
}

// UnknownCharError reports a pattern set referencing a character the
// partition was not built over. It cannot occur when the partition and the
// automata are built from the same trees; it exists to catch misuse.
type UnknownCharError struct{ Char rune }

func (e *UnknownCharError) Error() string {
	return fmt.Sprintf("alphabet: character %q outside partition", e.Char)
}

// Build computes the joint partition for all given trees. Both sides of a
// comparison must be passed together so their automata share one alphabet.
func Build(trees ...pattern.Node) *Partition {
	seen := map[rune]struct{}{}
	for _, t := range trees {
		collect(t, seen)
	}

	chars := make([]rune, 0, len(seen))
	for r := range seen {
		chars = append(chars, r)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	p := &Partition{
		reps:  make([]rune, 0, len(chars)+1),
		index: make(map[rune]ClassID, len(chars)),
	}
	for _, r := range chars {
		p.index[r] = ClassID(len(p.reps))
		p.reps = append(p.reps, r)
	}
	p.other = ClassID(len(p.reps))
	p.reps = append(p.reps, catchAllRep(seen))
	return p
}

func collect(n pattern.Node, seen map[rune]struct{}) {
	switch t := n.(type) {
	case *pattern.Literal:
		for _, s := range t.Sets {
			for _, r := range s.Chars {
				seen[r] = struct{}{}
			}
		}
	case *pattern.Class:
		for _, r := range t.Set.Chars {
			seen[r] = struct{}{}
		}
	case *pattern.Concat:
		collect(t.Left, seen)
		collect(t.Right, seen)
	case *pattern.Union:
		for _, a := range t.Alts {
			collect(a, seen)
		}
	case *pattern.Optional:
		collect(t.Child, seen)
	case *pattern.Repeat:
		collect(t.Child, seen)
	default:
		panic(fmt.Sprintf("alphabet: unknown pattern node %T", n))
	}
}

// catchAllRep picks the first rune from '!' upward that no pattern
// mentions, keeping witnesses printable where possible.
func catchAllRep(seen map[rune]struct{}) rune {
	for r := '!'; ; r++ {
		if _, ok := seen[r]; !ok {
			return r
		}
	}
}

// Size returns the class count, catch-all included.
func (p *Partition) Size() int { return len(p.reps) }

// Rep returns the representative character of a class.
func (p *Partition) Rep(id ClassID) rune { return p.reps[id] }

// Other returns the catch-all class.
func (p *Partition) Other() ClassID { return p.other }

// ClassOf maps a character to its class. Total: unmentioned characters
// fall into the catch-all class.
func (p *Partition) ClassOf(r rune) ClassID {
	if id, ok := p.index[r]; ok {
		return id
	}
	return p.other
}

// ClassesFor maps a single-position matcher onto the classes it admits.
// A negated set admits every class outside its characters, the catch-all
// included; the wildcard therefore admits every class.
func (p *Partition) ClassesFor(set pattern.CharSet) ([]ClassID, error) {
	if !set.Negated {
		out := make([]ClassID, 0, len(set.Chars))
		for _, r := range set.Chars {
			id, ok := p.index[r]
			if !ok {
				return nil, &UnknownCharError{Char: r}
			}
			out = append(out, id)
		}
		return out, nil
	}

	excluded := make(map[ClassID]bool, len(set.Chars))
	for _, r := range set.Chars {
		id, ok := p.index[r]
		if !ok {
			return nil, &UnknownCharError{Char: r}
		}
		excluded[id] = true
	}
	out := make([]ClassID, 0, len(p.reps)-len(excluded))
	for id := ClassID(0); int(id) < len(p.reps); id++ {
		if !excluded[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

// Render turns a class path into a concrete string, one representative
// per class.
func (p *Partition) Render(path []ClassID) string {
	var b strings.Builder
	for _, id := range path {
		b.WriteRune(p.reps[id])
	}
	return b.String()
}
