package circuit

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrSyntax is wrapped by every parse failure.
var ErrSyntax = errors.New("circuit: syntax error")

// SyntaxError reports where a formula stopped making sense.
type SyntaxError struct {
	Formula string
	Offset  int
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("circuit: %s at offset %d in %q", e.Msg, e.Offset, e.Formula)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokConst
	tokNot
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	op   Op
	val  bool
	pos  int
}

// Operator precedence, lowest first: OR/NOR, XOR/XNOR, AND/NAND, NOT.
var precedence = map[Op]int{
	OpOr:   1,
	OpNor:  1,
	OpXor:  2,
	OpXnor: 2,
	OpAnd:  3,
	OpNand: 3,
}

var keywordOps = map[string]Op{
	"AND":  OpAnd,
	"OR":   OpOr,
	"XOR":  OpXor,
	"XNOR": OpXnor,
	"NAND": OpNand,
	"NOR":  OpNor,
}

// Parse builds an expression tree from a formula such as "!(a || b) && (c && d)".
//
// Switches are single lowercase letters, a being switch 0. Constants are 0, 1,
// true and false. Operators accept symbolic and keyword spellings:
// && & AND, || | OR, ^ XOR, == XNOR, NAND, NOR, and prefix ! ~ NOT.
func Parse(formula string) (Expression, error) {
	toks, err := lex(formula)
	if err != nil {
		return nil, err
	}
	p := &parser{formula: formula, toks: toks}
	expr, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t.pos, "unexpected %q", t.text)
	}
	return expr, nil
}

// MustParse is Parse for formulas known at compile time.
func MustParse(formula string) Expression {
	e, err := Parse(formula)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	formula string
	toks    []token
	pos     int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(offset int, format string, args ...any) error {
	return &SyntaxError{Formula: p.formula, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// parseBinary is a precedence climber; all binary gates are left-associative.
func (p *parser) parseBinary(minPrec int) (Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || precedence[t.op] < minPrec {
			return left, nil
		}
		p.next()
		right, err := p.parseBinary(precedence[t.op] + 1)
		if err != nil {
			return nil, err
		}
		left = Binary{Op: t.op, L: left, R: right}
	}
}

func (p *parser) parseUnary() (Expression, error) {
	t := p.next()
	switch t.kind {
	case tokNot:
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not{X: x}, nil
	case tokLParen:
		x, err := p.parseBinary(1)
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, p.errorf(closing.pos, "expected ')'")
		}
		return x, nil
	case tokIdent:
		return Var(t.text[0] - 'a'), nil
	case tokConst:
		return Const(t.val), nil
	case tokEOF:
		return nil, p.errorf(t.pos, "unexpected end of formula")
	default:
		return nil, p.errorf(t.pos, "unexpected %q", t.text)
	}
}

func lex(formula string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(formula) {
		c := formula[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case c == '!' || c == '~':
			toks = append(toks, token{kind: tokNot, text: string(c), pos: i})
			i++
		case c == '^':
			toks = append(toks, token{kind: tokOp, op: OpXor, text: "^", pos: i})
			i++
		case c == '&' || c == '|':
			text := string(c)
			if i+1 < len(formula) && formula[i+1] == c {
				text += string(c)
			}
			op := OpAnd
			if c == '|' {
				op = OpOr
			}
			toks = append(toks, token{kind: tokOp, op: op, text: text, pos: i})
			i += len(text)
		case c == '=':
			if i+1 >= len(formula) || formula[i+1] != '=' {
				return nil, &SyntaxError{Formula: formula, Offset: i, Msg: "expected '=='"}
			}
			toks = append(toks, token{kind: tokOp, op: OpXnor, text: "==", pos: i})
			i += 2
		case c == '0' || c == '1':
			toks = append(toks, token{kind: tokConst, val: c == '1', text: string(c), pos: i})
			i++
		case unicode.IsLetter(rune(c)):
			start := i
			for i < len(formula) && unicode.IsLetter(rune(formula[i])) {
				i++
			}
			word := formula[start:i]
			tok, err := wordToken(formula, word, start)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		default:
			return nil, &SyntaxError{Formula: formula, Offset: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(formula)})
	return toks, nil
}

func wordToken(formula, word string, pos int) (token, error) {
	if op, ok := keywordOps[strings.ToUpper(word)]; ok && word == strings.ToUpper(word) {
		return token{kind: tokOp, op: op, text: word, pos: pos}, nil
	}
	switch word {
	case "NOT":
		return token{kind: tokNot, text: word, pos: pos}, nil
	case "true":
		return token{kind: tokConst, val: true, text: word, pos: pos}, nil
	case "false":
		return token{kind: tokConst, val: false, text: word, pos: pos}, nil
	}
	if len(word) == 1 && word[0] >= 'a' && word[0] <= 'z' {
		return token{kind: tokIdent, text: word, pos: pos}, nil
	}
	return token{}, &SyntaxError{Formula: formula, Offset: pos, Msg: fmt.Sprintf("unknown word %q", word)}
}
