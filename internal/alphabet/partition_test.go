package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexequiv/internal/pattern"
)

func mustTree(t *testing.T, block string) pattern.Node {
	t.Helper()
	n, err := pattern.ParseBlock(block)
	require.NoError(t, err)
	return n
}

func TestBuildSingletonClasses(t *testing.T) {
	p := Build(mustTree(t, `"ab" {}`), mustTree(t, `[b-d] {}`))

	// a, b, c, d plus the catch-all
	assert.Equal(t, 5, p.Size())
	for _, r := range "abcd" {
		assert.Equal(t, r, p.Rep(p.ClassOf(r)), "boundary char is its own representative")
	}
	assert.NotEqual(t, p.ClassOf('a'), p.ClassOf('b'))
	assert.Equal(t, p.Other(), p.ClassOf('z'), "unmentioned char falls into catch-all")
	assert.Equal(t, p.Other(), p.ClassOf('£'))
}

func TestCatchAllRepresentative(t *testing.T) {
	p := Build(mustTree(t, `"ab" {}`))
	assert.Equal(t, '!', p.Rep(p.Other()))

	// if '!' is a boundary char the catch-all moves on to the next rune
	p = Build(mustTree(t, `"!" {}`))
	assert.Equal(t, '"', p.Rep(p.Other()))
}

func TestClassesForPositive(t *testing.T) {
	p := Build(mustTree(t, `[abc] {}`))
	ids, err := p.ClassesFor(pattern.CharSet{Chars: []rune{'a', 'c'}})
	require.NoError(t, err)
	assert.Equal(t, []ClassID{p.ClassOf('a'), p.ClassOf('c')}, ids)
}

func TestClassesForNegated(t *testing.T) {
	p := Build(mustTree(t, `[abc] {}`))
	ids, err := p.ClassesFor(pattern.CharSet{Chars: []rune{'a', 'b'}, Negated: true})
	require.NoError(t, err)

	// everything but a and b: the c class and the catch-all
	assert.Len(t, ids, p.Size()-2)
	assert.Contains(t, ids, p.ClassOf('c'))
	assert.Contains(t, ids, p.Other())
	assert.NotContains(t, ids, p.ClassOf('a'))
}

func TestClassesForWildcard(t *testing.T) {
	p := Build(mustTree(t, `"ab" {}`))
	ids, err := p.ClassesFor(pattern.AnyChar())
	require.NoError(t, err)
	assert.Len(t, ids, p.Size())
}

func TestClassesForUnknownChar(t *testing.T) {
	p := Build(mustTree(t, `"a" {}`))
	_, err := p.ClassesFor(pattern.Singleton('z'))
	var uerr *UnknownCharError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, 'z', uerr.Char)
}

func TestRender(t *testing.T) {
	p := Build(mustTree(t, `"ab" {}`))
	path := []ClassID{p.ClassOf('a'), p.ClassOf('a'), p.ClassOf('b')}
	assert.Equal(t, "aab", p.Render(path))
	assert.Equal(t, "", p.Render(nil))
}

func TestPartitionIsJointOverAllTrees(t *testing.T) {
	left := mustTree(t, `"ab" {}`)
	right := mustTree(t, `"bc" {}`)
	p := Build(left, right)
	for _, r := range "abc" {
		assert.NotEqual(t, p.Other(), p.ClassOf(r))
	}
}
