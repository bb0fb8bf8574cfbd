package pattern

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ParseError reports a malformed rule block. The position points at the
// offending token in the block's source text.
type ParseError struct {
	Pos     lexer.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// The block lexer. Action bodies are brace-delimited and may nest, so `{`
// pushes into a state where everything except braces is opaque text. A
// repeat quantifier `{m,n}` is matched before the action-open brace.
var blockLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "Class", Pattern: `\[\^?(\\.|[^\]\\])*\]`},
		{Name: "Repeat", Pattern: `\{\d+(,\d*)?\}`},
		{Name: "Query", Pattern: `\?`},
		{Name: "ActionOpen", Pattern: `\{`, Action: lexer.Push("Action")},
		{Name: "whitespace", Pattern: `\s+`},
	},
	"Action": {
		{Name: "ActionOpen", Pattern: `\{`, Action: lexer.Push("Action")},
		{Name: "ActionClose", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "ActionText", Pattern: `[^{}]+`},
	},
})

// Grammar: a block is one or more rules, each a pattern (one or more
// quantified atoms) followed by an action body. The action body is scanned
// for balance and discarded.
type blockAST struct {
	Rules []*ruleAST `parser:"@@+"`
}

type ruleAST struct {
	Atoms  []*atomAST `parser:"@@+"`
	Action *actionAST `parser:"@@"`
}

type atomAST struct {
	Pos     lexer.Position
	Literal *string   `parser:"( @String"`
	Class   *string   `parser:"| @Class )"`
	Quant   *quantAST `parser:"@@?"`
}

type quantAST struct {
	Pos      lexer.Position
	Optional bool    `parser:"@Query"`
	Repeat   *string `parser:"| @Repeat"`
}

type actionAST struct {
	Parts []*actionPart `parser:"ActionOpen @@* ActionClose"`
}

type actionPart struct {
	Text   string     `parser:"@ActionText"`
	Nested *actionAST `parser:"| @@"`
}

var blockParser = participle.MustBuild[blockAST](
	participle.Lexer(blockLexer),
)

// ParseBlock turns the raw text of one rule block into its pattern tree:
// the union of every rule's pattern. Action bodies do not contribute to
// the language.
func ParseBlock(text string) (Node, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{
			Pos:     lexer.Position{Line: 1, Column: 1},
			Message: "empty rule block",
		}
	}
	ast, err := blockParser.ParseString("", text)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, &ParseError{Pos: perr.Position(), Message: perr.Message()}
		}
		return nil, err
	}

	alts := make([]Node, 0, len(ast.Rules))
	for _, r := range ast.Rules {
		n, err := r.tree()
		if err != nil {
			return nil, err
		}
		alts = append(alts, n)
	}
	return &Union{Alts: alts}, nil
}

func (r *ruleAST) tree() (Node, error) {
	var out Node
	for _, a := range r.Atoms {
		n, err := a.tree()
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = n
		} else {
			out = &Concat{Left: out, Right: n}
		}
	}
	return out, nil
}

func (a *atomAST) tree() (Node, error) {
	var n Node
	switch {
	case a.Literal != nil:
		n = decodeLiteral(*a.Literal)
	case a.Class != nil:
		set, err := decodeClass(*a.Class, a.Pos)
		if err != nil {
			return nil, err
		}
		n = &Class{Set: set}
	}
	if a.Quant == nil {
		return n, nil
	}
	return a.Quant.apply(n)
}

func (q *quantAST) apply(n Node) (Node, error) {
	if q.Repeat == nil {
		return &Optional{Child: n}, nil
	}
	body := strings.Trim(*q.Repeat, "{}")
	lo, hi, found := strings.Cut(body, ",")
	if !found {
		hi = lo
	}
	if hi == "" {
		return nil, &ParseError{Pos: q.Pos, Message: fmt.Sprintf("unbounded repeat {%s,} is not supported", lo)}
	}
	min, err := strconv.Atoi(lo)
	if err != nil {
		return nil, &ParseError{Pos: q.Pos, Message: fmt.Sprintf("repeat bound %s out of range", lo)}
	}
	max, err := strconv.Atoi(hi)
	if err != nil {
		return nil, &ParseError{Pos: q.Pos, Message: fmt.Sprintf("repeat bound %s out of range", hi)}
	}
	if min > max {
		return nil, &ParseError{Pos: q.Pos, Message: fmt.Sprintf("bad repeat bounds {%d,%d}: min exceeds max", min, max)}
	}
	return &Repeat{Child: n, Min: min, Max: max}, nil
}

// decodeLiteral strips the quotes and turns every character into a
// singleton class. The lexer guarantees every backslash is followed by a
// character, so decoding cannot fail.
func decodeLiteral(tok string) *Literal {
	body := tok[1 : len(tok)-1]
	var sets []CharSet
	for i := 0; i < len(body); {
		r, sz := utf8.DecodeRuneInString(body[i:])
		i += sz
		if r == '\\' {
			r, sz = utf8.DecodeRuneInString(body[i:])
			i += sz
			r = unescape(r)
		}
		sets = append(sets, Singleton(r))
	}
	return &Literal{Sets: sets}
}

// decodeClass parses the bracket body: optional leading ^, then characters
// and a-z style ranges. [^] is the wildcard.
func decodeClass(tok string, pos lexer.Position) (CharSet, error) {
	body := tok[1 : len(tok)-1]
	negated := strings.HasPrefix(body, "^")
	if negated {
		body = body[1:]
	}

	type item struct {
		r   rune
		esc bool
	}
	var items []item
	for i := 0; i < len(body); {
		r, sz := utf8.DecodeRuneInString(body[i:])
		i += sz
		if r == '\\' {
			r, sz = utf8.DecodeRuneInString(body[i:])
			i += sz
			items = append(items, item{unescape(r), true})
			continue
		}
		items = append(items, item{r, false})
	}

	chars := map[rune]struct{}{}
	for i := 0; i < len(items); {
		// a-b range: dash must be unescaped and have chars on both sides
		if i+2 < len(items) && items[i+1].r == '-' && !items[i+1].esc {
			lo, hi := items[i].r, items[i+2].r
			if lo > hi {
				return CharSet{}, &ParseError{
					Pos:     pos,
					Message: fmt.Sprintf("invalid range %c-%c in character class", lo, hi),
				}
			}
			for r := lo; r <= hi; r++ {
				chars[r] = struct{}{}
			}
			i += 3
			continue
		}
		chars[items[i].r] = struct{}{}
		i++
	}
	// [] has no meaning in the dialect; only the negated form [^] is the
	// wildcard
	if len(chars) == 0 && !negated {
		return CharSet{}, &ParseError{Pos: pos, Message: "empty character class"}
	}
	return newCharSet(chars, negated), nil
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}
