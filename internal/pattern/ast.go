package pattern

import "sort"

// CharSet is a single-position matcher: one character in (or, when Negated,
// not in) Chars. The wildcard [^] is the negated empty set.
type CharSet struct {
	Chars   []rune // sorted, no duplicates
	Negated bool
}

func Singleton(r rune) CharSet { return CharSet{Chars: []rune{r}} }

// AnyChar matches every single character.
func AnyChar() CharSet { return CharSet{Negated: true} }

func newCharSet(chars map[rune]struct{}, negated bool) CharSet {
	if len(chars) == 0 {
		return CharSet{Negated: negated}
	}
	out := make([]rune, 0, len(chars))
	for r := range chars {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return CharSet{Chars: out, Negated: negated}
}

func (s CharSet) Contains(r rune) bool {
	i := sort.Search(len(s.Chars), func(i int) bool { return s.Chars[i] >= r })
	in := i < len(s.Chars) && s.Chars[i] == r
	return in != s.Negated
}

// Node is a pattern-tree node. The variant set is closed: the automaton
// builder switches exhaustively over it.
type Node interface{ node() }

// Literal is a fixed-length chain of single-position matchers, one per
// character of a quoted literal. An empty chain matches the empty string.
type Literal struct {
	Sets []CharSet
}

// Class matches exactly one character from its set.
type Class struct {
	Set CharSet
}

// Concat matches Left then Right.
type Concat struct {
	Left, Right Node
}

// Union matches any alternative. Order carries no language meaning but is
// kept as written for diagnostics.
type Union struct {
	Alts []Node
}

// Optional matches its child or the empty string.
type Optional struct {
	Child Node
}

// Repeat matches Child between Min and Max times inclusive. Max is always
// finite in this dialect; the builder expands Repeat before constructing
// the NFA.
type Repeat struct {
	Child    Node
	Min, Max int
}

func (*Literal) node()  {}
func (*Class) node()    {}
func (*Concat) node()   {}
func (*Union) node()    {}
func (*Optional) node() {}
func (*Repeat) node()   {}
