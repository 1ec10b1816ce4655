// Package scanner converts rlox source text into tokens. Identifier
// classification goes through the language descriptor's keyword inventory;
// the scanner itself knows nothing about reserved words.
package scanner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rlox-lang/rlox/lang"
	"github.com/rlox-lang/rlox/token"
)

// Error is a lexical diagnostic.
type Error struct {
	Line    int
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

// Scanner tokenizes one source buffer. Scanning continues past errors so a
// single pass reports every lexical problem.
type Scanner struct {
	lang         *lang.Language
	input        string
	ch           byte
	position     int
	readPosition int
	line         int
	lineStart    int

	tokens []token.Token
	errs   []Error
}

// New returns a scanner for src using the descriptor's keyword table.
func New(l *lang.Language, src string) *Scanner {
	s := &Scanner{lang: l, input: src, line: 1}
	s.readChar()
	return s
}

// ScanTokens scans the whole input. The token slice always ends with EOF,
// even when errors were found.
func (s *Scanner) ScanTokens() ([]token.Token, []Error) {
	for s.ch != 0 {
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.Token{Type: token.EOF, Pos: s.pos()})
	return s.tokens, s.errs
}

func (s *Scanner) scanToken() {
	switch s.ch {
	case ' ', '\t', '\r', '\n':
		s.readChar()
	case '(':
		s.add(token.LeftParen)
	case ')':
		s.add(token.RightParen)
	case '{':
		s.add(token.LeftBrace)
	case '}':
		s.add(token.RightBrace)
	case ',':
		s.add(token.Comma)
	case '.':
		s.add(token.Dot)
	case '-':
		s.add(token.Minus)
	case '+':
		s.add(token.Plus)
	case ';':
		s.add(token.Semicolon)
	case '*':
		s.add(token.Star)
	case '/':
		if s.peekChar() == '/' {
			for s.ch != 0 && s.ch != '\n' {
				s.readChar()
			}
		} else {
			s.add(token.Slash)
		}
	case '!':
		s.addTwo('=', token.BangEqual, token.Bang)
	case '=':
		s.addTwo('=', token.EqualEqual, token.Equal)
	case '>':
		s.addTwo('=', token.GreaterEqual, token.Greater)
	case '<':
		s.addTwo('=', token.LessEqual, token.Less)
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(s.ch):
			s.scanNumber()
		case isAlpha(s.ch):
			s.scanIdent()
		default:
			s.error("Unexpected character.")
			s.readChar()
		}
	}
}

// scanString reads a double-quoted string. Strings may span lines; the line
// breaks themselves are not part of the value. There are no escape sequences.
func (s *Scanner) scanString() {
	start := s.pos()
	s.readChar()

	var value strings.Builder
	for s.ch != 0 && s.ch != '"' {
		if s.ch != '\n' {
			value.WriteByte(s.ch)
		}
		s.readChar()
	}

	if s.ch == 0 {
		s.error("Unterminated string.")
		return
	}
	s.readChar()

	s.tokens = append(s.tokens, token.Token{
		Type:    token.String,
		Lexeme:  s.input[start.Offset:s.position],
		Literal: value.String(),
		Pos:     start,
	})
}

// scanNumber reads a float64 literal: digits with an optional fraction. A
// trailing dot is part of the number ("1." is 1), a second dot is not.
func (s *Scanner) scanNumber() {
	start := s.pos()
	for isDigit(s.ch) {
		s.readChar()
	}
	if s.ch == '.' {
		s.readChar()
		for isDigit(s.ch) {
			s.readChar()
		}
	}

	lexeme := s.input[start.Offset:s.position]
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		s.errs = append(s.errs, Error{Line: start.Line, Message: "Unexpected character."})
		return
	}

	s.tokens = append(s.tokens, token.Token{
		Type:    token.Number,
		Lexeme:  lexeme,
		Literal: value,
		Pos:     start,
	})
}

func (s *Scanner) scanIdent() {
	start := s.pos()
	for isAlpha(s.ch) || isDigit(s.ch) {
		s.readChar()
	}

	word := s.input[start.Offset:s.position]
	typ := token.Ident
	if kw, ok := s.lang.LookupKeyword(word); ok {
		typ = kw
	}

	s.tokens = append(s.tokens, token.Token{Type: typ, Lexeme: word, Pos: start})
}

// add emits a token for the current character, addTwo for an operator that
// may be followed by next to form its two-character variant.
func (s *Scanner) add(typ token.Type) {
	start := s.pos()
	s.readChar()
	s.tokens = append(s.tokens, token.Token{
		Type:   typ,
		Lexeme: s.input[start.Offset:s.position],
		Pos:    start,
	})
}

func (s *Scanner) addTwo(next byte, two, one token.Type) {
	start := s.pos()
	typ := one
	s.readChar()
	if s.ch == next {
		typ = two
		s.readChar()
	}
	s.tokens = append(s.tokens, token.Token{
		Type:   typ,
		Lexeme: s.input[start.Offset:s.position],
		Pos:    start,
	})
}

// readChar advances one byte. Passing a newline moves the line counter, so
// positions stay correct inside comments and multi-line strings too.
func (s *Scanner) readChar() {
	if s.ch == '\n' {
		s.line++
		s.lineStart = s.readPosition
	}
	if s.readPosition >= len(s.input) {
		s.ch = 0
	} else {
		s.ch = s.input[s.readPosition]
	}
	s.position = s.readPosition
	s.readPosition++
}

func (s *Scanner) peekChar() byte {
	if s.readPosition >= len(s.input) {
		return 0
	}
	return s.input[s.readPosition]
}

func (s *Scanner) pos() token.Position {
	return token.Position{
		Line:   s.line,
		Column: s.position - s.lineStart + 1,
		Offset: s.position,
	}
}

func (s *Scanner) error(message string) {
	s.errs = append(s.errs, Error{Line: s.line, Message: message})
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isAlpha(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
