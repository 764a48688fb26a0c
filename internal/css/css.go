// Package css tokenizes the CSS value strings accepted by canvas attributes
// (colors, filters, fonts) and exposes a cursor over the resulting tokens.
//
// Tokenization is delegated to github.com/tdewolff/parse/v2/css. The cursor
// discards comments and whitespace, remembering only whether whitespace
// preceded a token, and converts failures into a *SyntaxError that carries
// the offending source together with a line/column location.
package css

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2"
	tcss "github.com/tdewolff/parse/v2/css"
	"github.com/tdewolff/parse/v2/strconv"
)

// Kind tags the value grammar a SyntaxError belongs to.
type Kind uint8

const (
	KindColor Kind = iota
	KindFilter
	KindFont
	KindLength
	KindAngle
	KindRepetition
	KindComposite
	KindKeyword
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindFilter:
		return "filter"
	case KindFont:
		return "font"
	case KindLength:
		return "length"
	case KindAngle:
		return "angle"
	case KindRepetition:
		return "repetition"
	case KindComposite:
		return "composite operation"
	case KindKeyword:
		return "keyword"
	}
	return "value"
}

// SyntaxError reports a CSS value that could not be parsed.
type SyntaxError struct {
	Source   string
	Kind     Kind
	Line     int
	Column   int
	Expected string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("css: invalid %s %q at %d:%d: expected %s", e.Kind, e.Source, e.Line, e.Column, e.Expected)
}

// TokenType aliases the lexer token type so callers need not import it.
type TokenType = tcss.TokenType

const (
	Ident        = tcss.IdentToken
	Function     = tcss.FunctionToken
	Hash         = tcss.HashToken
	String       = tcss.StringToken
	Delim        = tcss.DelimToken
	Number       = tcss.NumberToken
	Percentage   = tcss.PercentageToken
	Dimension    = tcss.DimensionToken
	Comma        = tcss.CommaToken
	UnicodeRange = tcss.UnicodeRangeToken
	CloseParen   = tcss.RightParenthesisToken
	EOF          = tcss.ErrorToken
)

// Token is one lexed CSS token.
type Token struct {
	Type        TokenType
	Data        string
	Offset      int
	SpaceBefore bool
}

// Is reports whether t is an identifier equal to name, ASCII case-insensitively.
func (t Token) Is(name string) bool {
	return t.Type == Ident && strings.EqualFold(t.Data, name)
}

// FunctionName returns the lower-cased name of a function token without "(".
func (t Token) FunctionName() string {
	return strings.ToLower(strings.TrimSuffix(t.Data, "("))
}

// Numeric splits a number, percentage or dimension token into its value and
// lower-cased unit ("%" for percentages, "" for plain numbers).
func (t Token) Numeric() (float64, string, bool) {
	switch t.Type {
	case Number, Percentage, Dimension:
	default:
		return 0, "", false
	}
	v, n := strconv.ParseFloat([]byte(t.Data))
	if n == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, "", false
	}
	return v, strings.ToLower(t.Data[n:]), true
}

// Tokenize lexes src into tokens, dropping whitespace and comments.
func Tokenize(src string) []Token {
	lex := tcss.NewLexer(parse.NewInputString(src))
	var toks []Token
	offset := 0
	space := false
	for {
		tt, data := lex.Next()
		if tt == tcss.ErrorToken {
			break
		}
		start := offset
		offset += len(data)
		switch tt {
		case tcss.WhitespaceToken, tcss.CommentToken:
			space = true
			continue
		}
		if tt == tcss.StringToken && len(data) >= 2 {
			data = data[1 : len(data)-1]
		}
		toks = append(toks, Token{Type: tt, Data: string(bytes.Clone(data)), Offset: start, SpaceBefore: space})
		space = false
	}
	return toks
}

// Cursor walks a token slice.
type Cursor struct {
	src  string
	kind Kind
	toks []Token
	pos  int
	end  int
}

// NewCursor tokenizes src; errors produced by the cursor are tagged with kind.
func NewCursor(src string, kind Kind) *Cursor {
	toks := Tokenize(src)
	return &Cursor{src: src, kind: kind, toks: toks, end: len(toks)}
}

// Done reports whether all tokens were consumed.
func (c *Cursor) Done() bool { return c.pos >= c.end }

// Peek returns the next token without consuming it. At the end it returns
// a token of type EOF.
func (c *Cursor) Peek() Token {
	if c.pos >= c.end {
		return Token{Type: EOF, Offset: len(c.src)}
	}
	return c.toks[c.pos]
}

// Next consumes and returns the next token.
func (c *Cursor) Next() Token {
	t := c.Peek()
	if c.pos < c.end {
		c.pos++
	}
	return t
}

// Save returns a position that Restore rewinds to.
func (c *Cursor) Save() int { return c.pos }

// Restore rewinds to a position obtained from Save.
func (c *Cursor) Restore(pos int) { c.pos = pos }

// Errorf builds a SyntaxError located at the next token.
func (c *Cursor) Errorf(format string, args ...any) *SyntaxError {
	off := c.Peek().Offset
	if off > len(c.src) {
		off = len(c.src)
	}
	line, col, _ := parse.Position(strings.NewReader(c.src), off)
	return &SyntaxError{
		Source:   c.src,
		Kind:     c.kind,
		Line:     line,
		Column:   col,
		Expected: fmt.Sprintf(format, args...),
	}
}

// Block consumes the arguments of a function whose name token was just
// consumed and returns a cursor restricted to them. The closing parenthesis
// is consumed as well.
func (c *Cursor) Block() (*Cursor, error) {
	depth := 0
	for i := c.pos; i < c.end; i++ {
		switch c.toks[i].Type {
		case tcss.FunctionToken, tcss.LeftParenthesisToken:
			depth++
		case tcss.RightParenthesisToken:
			if depth == 0 {
				inner := &Cursor{src: c.src, kind: c.kind, toks: c.toks, pos: c.pos, end: i}
				c.pos = i + 1
				return inner, nil
			}
			depth--
		}
	}
	c.pos = c.end
	return nil, c.Errorf("')'")
}

// SkipComma consumes a comma if one is next.
func (c *Cursor) SkipComma() bool {
	if c.Peek().Type == Comma {
		c.pos++
		return true
	}
	return false
}

// SkipDelim consumes the delimiter d if it is next.
func (c *Cursor) SkipDelim(d string) bool {
	if t := c.Peek(); t.Type == Delim && t.Data == d {
		c.pos++
		return true
	}
	return false
}

// ExpectDone fails unless every token was consumed.
func (c *Cursor) ExpectDone() error {
	if !c.Done() {
		return c.Errorf("end of input")
	}
	return nil
}

// Number consumes a plain number.
func (c *Cursor) Number() (float64, error) {
	t := c.Peek()
	if t.Type != Number {
		return 0, c.Errorf("number")
	}
	v, _, ok := t.Numeric()
	if !ok {
		return 0, c.Errorf("finite number")
	}
	c.pos++
	return v, nil
}

// NumberOrPercentage consumes a number or a percentage; percentages are
// divided by 100 and the second result reports which one was seen.
func (c *Cursor) NumberOrPercentage() (float64, bool, error) {
	t := c.Peek()
	v, _, ok := t.Numeric()
	if !ok || (t.Type != Number && t.Type != Percentage) {
		return 0, false, c.Errorf("number or percentage")
	}
	c.pos++
	if t.Type == Percentage {
		return v / 100, true, nil
	}
	return v, false, nil
}

// Angle consumes an angle in degrees, radians, gradians or turns and
// returns it in degrees. A bare number is accepted as degrees when
// allowBare is set; zero is always accepted.
func (c *Cursor) Angle(allowBare bool) (float64, error) {
	t := c.Peek()
	v, unit, ok := t.Numeric()
	if !ok || t.Type == Percentage {
		return 0, c.Errorf("angle")
	}
	var deg float64
	switch {
	case t.Type == Number && (allowBare || v == 0):
		deg = v
	case unit == "deg":
		deg = v
	case unit == "rad":
		deg = v * 180 / math.Pi
	case unit == "grad":
		deg = v * 0.9
	case unit == "turn":
		deg = v * 360
	default:
		return 0, c.Errorf("angle")
	}
	c.pos++
	return deg, nil
}

// AbsoluteLength converts v in unit to CSS pixels for the absolute length
// units. The second result is false for unknown or relative units.
func AbsoluteLength(v float64, unit string) (float64, bool) {
	switch unit {
	case "px":
		return v, true
	case "in":
		return v * 96, true
	case "cm":
		return v * 96 / 2.54, true
	case "mm":
		return v * 96 / 25.4, true
	case "q":
		return v * 96 / 101.6, true
	case "pt":
		return v * 4 / 3, true
	case "pc":
		return v * 16, true
	}
	return 0, false
}

// Length consumes an absolute length and returns it in pixels. Zero may be
// written without a unit.
func (c *Cursor) Length() (float64, error) {
	t := c.Peek()
	v, unit, ok := t.Numeric()
	if !ok || t.Type == Percentage {
		return 0, c.Errorf("length")
	}
	if t.Type == Number {
		if v != 0 {
			return 0, c.Errorf("length unit")
		}
		c.pos++
		return 0, nil
	}
	px, ok := AbsoluteLength(v, unit)
	if !ok {
		return 0, c.Errorf("absolute length")
	}
	c.pos++
	return px, nil
}

// Keyword parses src as a single identifier and returns it lower-cased.
func Keyword(src string, kind Kind) (string, error) {
	c := NewCursor(src, kind)
	t := c.Next()
	if t.Type != Ident {
		c.Restore(0)
		return "", c.Errorf("keyword")
	}
	if err := c.ExpectDone(); err != nil {
		return "", err
	}
	return strings.ToLower(t.Data), nil
}
