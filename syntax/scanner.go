package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"wisp/logging"
)

// Scanner works like an io.Reader for source text (outputting tokens).  The
// lexical grammar is that of an s-expression language: parens, brackets, the
// annotation colon, the four arithmetic operators, number literals, and
// symbols.  Commas count as whitespace.
type Scanner struct {
	lctx *logging.LogContext

	source *bufio.Reader

	line int
	col  int

	tokBuilder strings.Builder

	curr rune

	// lookahead holds a rune that was read past the end of the previous token
	// and must be reconsidered before reading new input
	lookahead    rune
	hasLookahead bool
}

// NewScanner creates a scanner reading source text from r
func NewScanner(r io.Reader, lctx *logging.LogContext) *Scanner {
	return &Scanner{source: bufio.NewReader(r), lctx: lctx, line: 1}
}

// IsDigit tests if a rune is an ASCII digit
func IsDigit(r rune) bool {
	return r > '/' && r < ':'
}

// isSpecial tests if a rune terminates a symbol or number literal
func isSpecial(r rune) bool {
	switch r {
	case '(', ')', '[', ']', ':', '+', '*', '/', ',':
		return true
	}

	return false
}

// isWhitespace tests whether a rune is insignificant between tokens.  Commas
// are treated exactly like spaces so parameter vectors may be written
// `[a: i32, b: i32]`.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v' || r == ','
}

// ReadToken reads a single token from the stream.  It returns a nil token and
// a nil error at the end of input.
func (s *Scanner) ReadToken() (*Token, error) {
	for s.readNext() {
		if isWhitespace(s.curr) {
			s.tokBuilder.Reset()
			continue
		}

		switch s.curr {
		case '(':
			return s.getToken(LPAREN), nil
		case ')':
			return s.getToken(RPAREN), nil
		case '[':
			return s.getToken(LBRACKET), nil
		case ']':
			return s.getToken(RBRACKET), nil
		case ':':
			return s.getToken(COLON), nil
		case '+':
			return s.getToken(PLUS), nil
		case '-':
			return s.getToken(MINUS), nil
		case '*':
			return s.getToken(STAR), nil
		case '/':
			return s.getToken(FSLASH), nil
		case ';':
			// line comment: discard through the end of the line
			for s.readNext() && s.curr != '\n' {
			}

			s.tokBuilder.Reset()
			continue
		default:
			if IsDigit(s.curr) {
				return s.readNumberLiteral()
			}

			return s.readSymbol(), nil
		}
	}

	return nil, nil
}

// readNumberLiteral reads a number literal: a run of digits and dots.  The
// literal is not fully validated here; the walker decides whether it parses as
// an i32 or an f32.
func (s *Scanner) readNumberLiteral() (*Token, error) {
	for {
		ahead, more := s.peek()
		if !more || !IsDigit(ahead) && ahead != '.' {
			// a literal running directly into symbol characters (eg. `12abc`)
			// is malformed rather than two adjacent tokens
			if more && !isWhitespace(ahead) && !isSpecial(ahead) {
				return nil, s.errorf("malformed number literal: `%s%c`", s.tokBuilder.String(), ahead)
			}

			break
		}

		s.readNext()
	}

	return s.getToken(NUMLIT), nil
}

// readSymbol reads a symbol: any run of characters up to whitespace or a
// special character
func (s *Scanner) readSymbol() *Token {
	for {
		ahead, more := s.peek()
		if !more || isWhitespace(ahead) || isSpecial(ahead) {
			break
		}

		s.readNext()
	}

	return s.getToken(SYMBOL)
}

// -----------------------------------------------------------------------------

// getToken produces a token of the given kind from the contents of the token
// builder and resets the builder
func (s *Scanner) getToken(kind int) *Token {
	tok := &Token{Kind: kind, Value: s.tokBuilder.String(), Line: s.line, Col: s.col}
	s.tokBuilder.Reset()
	return tok
}

// readNext consumes the next rune of input into the token builder.  It returns
// false at the end of input.
func (s *Scanner) readNext() bool {
	var r rune
	if s.hasLookahead {
		r = s.lookahead
		s.hasLookahead = false
	} else {
		var err error
		r, _, err = s.source.ReadRune()
		if err != nil {
			return false
		}
	}

	s.curr = r
	s.tokBuilder.WriteRune(r)

	switch r {
	case '\n':
		s.line++
		s.col = 0
	case '\t':
		s.col += 4
	default:
		s.col++
	}

	return true
}

// peek looks at the next rune of input without consuming it
func (s *Scanner) peek() (rune, bool) {
	if s.hasLookahead {
		return s.lookahead, true
	}

	r, _, err := s.source.ReadRune()
	if err != nil {
		return 0, false
	}

	s.lookahead = r
	s.hasLookahead = true
	return r, true
}

// errorf produces a positioned lexical error at the rune most recently
// consumed
func (s *Scanner) errorf(format string, args ...interface{}) error {
	return &SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Kind:    logging.LMKToken,
		Pos:     &logging.TextPosition{StartLn: s.line, StartCol: s.col, EndLn: s.line, EndCol: s.col + 1},
	}
}
