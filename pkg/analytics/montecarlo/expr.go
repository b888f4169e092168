package montecarlo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Formulas are compiled into a small expression tree. Only numbers, variable
// names, + - * / ^, unary sign, parentheses and the functions below are
// accepted.

type exprNode interface {
	eval(values []float64) float64
}

type numberNode float64

func (n numberNode) eval([]float64) float64 { return float64(n) }

type varNode int

func (n varNode) eval(values []float64) float64 { return values[n] }

type unaryNode struct {
	neg bool
	x   exprNode
}

func (n unaryNode) eval(values []float64) float64 {
	if n.neg {
		return -n.x.eval(values)
	}
	return n.x.eval(values)
}

type binaryNode struct {
	op   byte
	l, r exprNode
}

func (n binaryNode) eval(values []float64) float64 {
	l, r := n.l.eval(values), n.r.eval(values)
	switch n.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	default:
		return math.Pow(l, r)
	}
}

type function struct {
	minArgs, maxArgs int
	apply            func(args []float64) float64
}

var functions = map[string]function{
	"abs":  {1, 1, func(a []float64) float64 { return math.Abs(a[0]) }},
	"sqrt": {1, 1, func(a []float64) float64 { return math.Sqrt(a[0]) }},
	"exp":  {1, 1, func(a []float64) float64 { return math.Exp(a[0]) }},
	"log":  {1, 1, func(a []float64) float64 { return math.Log(a[0]) }},
	"pow":  {2, 2, func(a []float64) float64 { return math.Pow(a[0], a[1]) }},
	"min": {1, -1, func(a []float64) float64 {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Min(m, v)
		}
		return m
	}},
	"max": {1, -1, func(a []float64) float64 {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Max(m, v)
		}
		return m
	}},
}

type callNode struct {
	fn   function
	args []exprNode
}

func (n callNode) eval(values []float64) float64 {
	args := make([]float64, len(n.args))
	for i, a := range n.args {
		args[i] = a.eval(values)
	}
	return n.fn.apply(args)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func tokenize(src string) ([]token, error) {
	var out []token
	i := 0
	for i < len(src) {
		c := rune(src[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case unicode.IsDigit(c) || c == '.':
			start := i
			for i < len(src) && (unicode.IsDigit(rune(src[i])) || src[i] == '.') {
				i++
			}
			// exponent suffix, e.g. 1e-3
			if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
				j := i + 1
				if j < len(src) && (src[j] == '+' || src[j] == '-') {
					j++
				}
				if j < len(src) && unicode.IsDigit(rune(src[j])) {
					i = j
					for i < len(src) && unicode.IsDigit(rune(src[i])) {
						i++
					}
				}
			}
			out = append(out, token{kind: tokNumber, text: src[start:i], pos: start})
		case c == '_' || unicode.IsLetter(c):
			start := i
			for i < len(src) && (src[i] == '_' || unicode.IsLetter(rune(src[i])) || unicode.IsDigit(rune(src[i]))) {
				i++
			}
			out = append(out, token{kind: tokIdent, text: src[start:i], pos: start})
		case strings.ContainsRune("+-*/^(),", c):
			out = append(out, token{kind: tokOp, text: string(c), pos: i})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", c, i)
		}
	}
	return append(out, token{kind: tokEOF, pos: len(src)}), nil
}

type parser struct {
	tokens []token
	pos    int
	vars   map[string]int
}

// compileFormula parses src and binds identifiers to variable indexes.
func compileFormula(src string, vars map[string]int) (exprNode, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("formula is empty")
	}
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, vars: vars}
	node, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", tok.text, tok.pos)
	}
	return node, nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) isOp(ops string) bool {
	tok := p.peek()
	return tok.kind == tokOp && strings.Contains(ops, tok.text)
}

func (p *parser) expect(op string) error {
	tok := p.next()
	if tok.kind != tokOp || tok.text != op {
		return fmt.Errorf("expected %q at position %d", op, tok.pos)
	}
	return nil
}

func (p *parser) expr() (exprNode, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOp("+-") {
		op := p.next().text[0]
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, l: left, r: right}
	}
	return left, nil
}

func (p *parser) term() (exprNode, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*/") {
		op := p.next().text[0]
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, l: left, r: right}
	}
	return left, nil
}

func (p *parser) unary() (exprNode, error) {
	if p.isOp("+-") {
		neg := p.next().text == "-"
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unaryNode{neg: neg, x: x}, nil
	}
	return p.power()
}

// power is right associative: 2^3^2 == 2^(3^2).
func (p *parser) power() (exprNode, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.isOp("^") {
		p.next()
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: '^', l: base, r: exp}, nil
	}
	return base, nil
}

func (p *parser) primary() (exprNode, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q at position %d", tok.text, tok.pos)
		}
		return numberNode(v), nil

	case tokIdent:
		if p.isOp("(") {
			return p.call(tok)
		}
		idx, ok := p.vars[tok.text]
		if !ok {
			return nil, fmt.Errorf("unknown variable %q at position %d", tok.text, tok.pos)
		}
		return varNode(idx), nil

	case tokOp:
		if tok.text == "(" {
			node, err := p.expr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return node, nil
		}
		return nil, fmt.Errorf("unexpected %q at position %d", tok.text, tok.pos)

	default:
		return nil, fmt.Errorf("unexpected end of formula")
	}
}

func (p *parser) call(name token) (exprNode, error) {
	fn, ok := functions[strings.ToLower(name.text)]
	if !ok {
		return nil, fmt.Errorf("unknown function %q at position %d", name.text, name.pos)
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}

	var args []exprNode
	if !p.isOp(")") {
		for {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.isOp(",") {
				break
			}
			p.next()
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}

	if len(args) < fn.minArgs || (fn.maxArgs >= 0 && len(args) > fn.maxArgs) {
		return nil, fmt.Errorf("function %q called with %d arguments", name.text, len(args))
	}
	return callNode{fn: fn, args: args}, nil
}
