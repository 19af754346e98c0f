// Package calc evaluates arithmetic expressions typed into the calculator panel.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrSyntax         = errors.New("syntax error")
	ErrDivisionByZero = errors.New("division by zero")
	ErrDomain         = errors.New("result is not a real number")
)

var functions = map[string]func(float64) float64{
	"sqrt": math.Sqrt,
	"abs":  math.Abs,
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"ln":   math.Log,
	"log":  math.Log10,
	"exp":  math.Exp,
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

// Evaluate parses and evaluates expr. Supported: + - * / % ^, parentheses,
// unary minus, the constants pi and e, and sqrt abs sin cos tan ln log exp.
// ^ is right associative and binds tighter than unary minus, so -2^2 is -4.
func Evaluate(expr string) (float64, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	p := &parser{tokens: tokens}
	result, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.pos < len(p.tokens) {
		return 0, fmt.Errorf("%w: unexpected %q", ErrSyntax, p.tokens[p.pos].text)
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, ErrDomain
	}
	return result, nil
}

// Format renders a result without trailing zeros.
func Format(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 12, 64)
}

func tokenize(expr string) ([]token, error) {
	var tokens []token
	runes := []rune(expr)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			text := string(runes[start:i])
			n, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid number %q", ErrSyntax, text)
			}
			tokens = append(tokens, token{kind: tokNumber, text: text, num: n})
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && unicode.IsLetter(runes[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokIdent, text: strings.ToLower(string(runes[start:i]))})
		case strings.ContainsRune("+-*/%^", r):
			tokens = append(tokens, token{kind: tokOp, text: string(r)})
			i++
		case r == '×':
			tokens = append(tokens, token{kind: tokOp, text: "*"})
			i++
		case r == '÷':
			tokens = append(tokens, token{kind: tokOp, text: "/"})
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "("})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")"})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected character %q", ErrSyntax, r)
		}
	}
	return tokens, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) peekOp(ops string) (string, bool) {
	tok, ok := p.peek()
	if !ok || tok.kind != tokOp || !strings.Contains(ops, tok.text) {
		return "", false
	}
	return tok.text, true
}

// expr = term { ("+" | "-") term }
func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peekOp("+-")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			left += right
		} else {
			left -= right
		}
	}
}

// term = unary { ("*" | "/" | "%") unary }
func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peekOp("*/%")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		switch op {
		case "*":
			left *= right
		case "/":
			if right == 0 {
				return 0, ErrDivisionByZero
			}
			left /= right
		case "%":
			if right == 0 {
				return 0, ErrDivisionByZero
			}
			left = math.Mod(left, right)
		}
	}
}

// unary = ("-" | "+") unary | power
func (p *parser) parseUnary() (float64, error) {
	if op, ok := p.peekOp("+-"); ok {
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == "-" {
			return -v, nil
		}
		return v, nil
	}
	return p.parsePower()
}

// power = primary [ "^" unary ]
func (p *parser) parsePower() (float64, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	if _, ok := p.peekOp("^"); !ok {
		return base, nil
	}
	p.pos++
	exp, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	return math.Pow(base, exp), nil
}

func (p *parser) parsePrimary() (float64, error) {
	tok, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	switch tok.kind {
	case tokNumber:
		p.pos++
		return tok.num, nil
	case tokLParen:
		p.pos++
		return p.parseGroup()
	case tokIdent:
		p.pos++
		if v, ok := constants[tok.text]; ok {
			return v, nil
		}
		fn, ok := functions[tok.text]
		if !ok {
			return 0, fmt.Errorf("%w: unknown name %q", ErrSyntax, tok.text)
		}
		next, ok := p.peek()
		if !ok || next.kind != tokLParen {
			return 0, fmt.Errorf("%w: %s needs parentheses", ErrSyntax, tok.text)
		}
		p.pos++
		arg, err := p.parseGroup()
		if err != nil {
			return 0, err
		}
		return fn(arg), nil
	default:
		return 0, fmt.Errorf("%w: unexpected %q", ErrSyntax, tok.text)
	}
}

// parseGroup parses the inside of a parenthesised group, with the opening
// paren already consumed.
func (p *parser) parseGroup() (float64, error) {
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	closing, ok := p.peek()
	if !ok || closing.kind != tokRParen {
		return 0, fmt.Errorf("%w: missing closing parenthesis", ErrSyntax)
	}
	p.pos++
	return v, nil
}
