package automaton

import "lexequiv/internal/alphabet"

// Result is the outcome of comparing two DFAs. A nil witness means no
// string distinguishes the languages in that direction; both nil means the
// languages are equal.
type Result struct {
	Equivalent bool
	OnlyLeft   *string // shortest string accepted by the left DFA only
	OnlyRight  *string // shortest string accepted by the right DFA only
}

type productVisit struct {
	x, y   int
	parent int
	via    alphabet.ClassID
}

// Compare decides language equivalence of two same-partition DFAs by a
// breadth-first walk of the product state space. The first visited pair
// where exactly one side accepts yields that side's witness; BFS order
// makes it shortest, with ties broken by class order. The walk continues
// until witnesses for both directions are found or the finite pair space
// is exhausted.
func Compare(a, b *DFA) (Result, error) {
	if a.part != b.part {
		return Result{}, ErrPartitionMismatch
	}
	k := a.part.Size()

	type pair struct{ x, y int }
	start := pair{a.start, b.start}
	seen := map[pair]bool{start: true}
	visits := []productVisit{{x: start.x, y: start.y, parent: -1}}
	leftAt, rightAt := -1, -1

	for i := 0; i < len(visits); i++ {
		v := visits[i]
		accA, accB := a.accept[v.x], b.accept[v.y]
		if accA && !accB && leftAt < 0 {
			leftAt = i
		}
		if accB && !accA && rightAt < 0 {
			rightAt = i
		}
		if leftAt >= 0 && rightAt >= 0 {
			break
		}
		for c := 0; c < k; c++ {
			np := pair{a.trans[v.x][c], b.trans[v.y][c]}
			if !seen[np] {
				seen[np] = true
				visits = append(visits, productVisit{
					x: np.x, y: np.y, parent: i, via: alphabet.ClassID(c),
				})
			}
		}
	}

	res := Result{Equivalent: leftAt < 0 && rightAt < 0}
	if leftAt >= 0 {
		w := witnessString(a.part, visits, leftAt)
		res.OnlyLeft = &w
	}
	if rightAt >= 0 {
		w := witnessString(a.part, visits, rightAt)
		res.OnlyRight = &w
	}
	return res, nil
}

// witnessString rebuilds the class path from the BFS parent links and
// renders it with each class's representative character.
func witnessString(part *alphabet.Partition, visits []productVisit, at int) string {
	var path []alphabet.ClassID
	for i := at; visits[i].parent >= 0; i = visits[i].parent {
		path = append(path, visits[i].via)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return part.Render(path)
}
