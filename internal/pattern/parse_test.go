package pattern

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, block string) Node {
	t.Helper()
	n, err := ParseBlock(block)
	require.NoError(t, err, "parse %q", block)
	u, ok := n.(*Union)
	require.True(t, ok, "block tree is always a union")
	require.Len(t, u.Alts, 1)
	return u.Alts[0]
}

func TestParseLiteral(t *testing.T) {
	n := parseOne(t, `"ab" { return T_AB; }`)
	lit, ok := n.(*Literal)
	require.True(t, ok)
	require.Len(t, lit.Sets, 2)
	assert.Equal(t, []rune{'a'}, lit.Sets[0].Chars)
	assert.Equal(t, []rune{'b'}, lit.Sets[1].Chars)
	assert.False(t, lit.Sets[0].Negated)
}

func TestParseLiteralEscapes(t *testing.T) {
	lit := parseOne(t, `"a\"\n" {}`).(*Literal)
	require.Len(t, lit.Sets, 3)
	assert.Equal(t, []rune{'"'}, lit.Sets[1].Chars)
	assert.Equal(t, []rune{'\n'}, lit.Sets[2].Chars)
}

func TestParseEmptyLiteral(t *testing.T) {
	lit := parseOne(t, `"" {}`).(*Literal)
	assert.Empty(t, lit.Sets)
}

func TestParseClasses(t *testing.T) {
	tests := []struct {
		block   string
		chars   []rune
		negated bool
	}{
		{`[abc] {}`, []rune{'a', 'b', 'c'}, false},
		{`[a-c] {}`, []rune{'a', 'b', 'c'}, false},
		{`[a-cx] {}`, []rune{'a', 'b', 'c', 'x'}, false},
		{`[^ab] {}`, []rune{'a', 'b'}, true},
		{`[^] {}`, nil, true}, // wildcard
		{`[-a] {}`, []rune{'-', 'a'}, false},
		{`[a\-c] {}`, []rune{'-', 'a', 'c'}, false},
		{`[\n\t] {}`, []rune{'\t', '\n'}, false},
	}
	for _, tc := range tests {
		t.Run(tc.block, func(t *testing.T) {
			cls, ok := parseOne(t, tc.block).(*Class)
			require.True(t, ok)
			assert.Equal(t, tc.chars, cls.Set.Chars)
			assert.Equal(t, tc.negated, cls.Set.Negated)
		})
	}
}

func TestParseQuantifiers(t *testing.T) {
	n := parseOne(t, `"a"? "b"{2,3} {}`)
	cat, ok := n.(*Concat)
	require.True(t, ok)

	opt, ok := cat.Left.(*Optional)
	require.True(t, ok)
	_, ok = opt.Child.(*Literal)
	require.True(t, ok)

	rep, ok := cat.Right.(*Repeat)
	require.True(t, ok)
	assert.Equal(t, 2, rep.Min)
	assert.Equal(t, 3, rep.Max)
}

func TestParseExactRepeat(t *testing.T) {
	rep := parseOne(t, `"a"{2} {}`).(*Repeat)
	assert.Equal(t, 2, rep.Min)
	assert.Equal(t, 2, rep.Max)
}

func TestParseConcatIsLeftAssociative(t *testing.T) {
	n := parseOne(t, `"a" "b" "c" {}`)
	cat := n.(*Concat)
	_, ok := cat.Left.(*Concat)
	assert.True(t, ok)
	_, ok = cat.Right.(*Literal)
	assert.True(t, ok)
}

func TestParseUnionOfRules(t *testing.T) {
	n, err := ParseBlock(`"a" { one(); }
[0-9] { two(); }`)
	require.NoError(t, err)
	u := n.(*Union)
	require.Len(t, u.Alts, 2)
	_, ok := u.Alts[0].(*Literal)
	assert.True(t, ok)
	_, ok = u.Alts[1].(*Class)
	assert.True(t, ok)
}

func TestParseNestedActionBody(t *testing.T) {
	n, err := ParseBlock(`"a" { if (x) { y(); } else { z(); } }
"b" {}`)
	require.NoError(t, err)
	assert.Len(t, n.(*Union).Alts, 2)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		block string
	}{
		{"empty block", "  \n\t "},
		{"bad repeat bounds", `"a"{3,2} {}`},
		{"unbounded repeat", `"a"{2,} {}`},
		{"unterminated literal", `"abc`},
		{"unterminated class", `[abc {}`},
		{"unterminated action", `"a" { foo(`},
		{"missing action", `"a"`},
		{"invalid range", `[c-a] {}`},
		{"empty positive class", `[] {}`},
		{"overflowing repeat bound", `"a"{99999999999999999999} {}`},
		{"overflowing repeat max", `"a"{1,99999999999999999999} {}`},
		{"stray text", `foo {}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBlock(tc.block)
			require.Error(t, err)
			var perr *ParseError
			require.True(t, errors.As(err, &perr), "want *ParseError, got %T: %v", err, err)
			assert.NotEmpty(t, perr.Message)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := ParseBlock(`"ok" {}
"a"{5,1} {}`)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Pos.Line)
}

func TestParseRepeatBoundOverflow(t *testing.T) {
	// a bound that does not fit in an int must fail the parse, not clamp
	_, err := ParseBlock(`"a"{99999999999999999999} {}`)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "out of range")
}

func TestCharSetContains(t *testing.T) {
	s := CharSet{Chars: []rune{'a', 'c'}}
	assert.True(t, s.Contains('a'))
	assert.False(t, s.Contains('b'))

	neg := CharSet{Chars: []rune{'a'}, Negated: true}
	assert.False(t, neg.Contains('a'))
	assert.True(t, neg.Contains('b'))
	assert.True(t, AnyChar().Contains('q'))
}
