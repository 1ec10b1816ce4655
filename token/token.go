// Package token defines the lexical vocabulary of rlox: token types, literal
// payloads, and source positions shared by the scanner, parser, and tools.
package token

import (
	"fmt"
	"strings"
)

// Type identifies the lexical class of a token.
type Type int

const (
	// Special
	EOF Type = iota
	Ident
	String
	Number

	// Single-character punctuation
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One- or two-character operators
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Keywords
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Return
	Super
	This
	True
	Var
	While
)

var typeNames = [...]string{
	EOF:    "eof",
	Ident:  "identifier",
	String: "string",
	Number: "number",

	LeftParen:  "(",
	RightParen: ")",
	LeftBrace:  "{",
	RightBrace: "}",
	Comma:      ",",
	Dot:        ".",
	Minus:      "-",
	Plus:       "+",
	Semicolon:  ";",
	Slash:      "/",
	Star:       "*",

	Bang:         "!",
	BangEqual:    "!=",
	Equal:        "=",
	EqualEqual:   "==",
	Greater:      ">",
	GreaterEqual: ">=",
	Less:         "<",
	LessEqual:    "<=",

	And:    "and",
	Class:  "class",
	Else:   "else",
	False:  "false",
	Fun:    "fun",
	For:    "for",
	If:     "if",
	Nil:    "nil",
	Or:     "or",
	Return: "return",
	Super:  "super",
	This:   "this",
	True:   "true",
	Var:    "var",
	While:  "while",
}

// String returns the canonical spelling for punctuation and keywords, or a
// class name for identifiers, literals, and EOF.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// IsKeyword reports whether the type is a reserved word.
func (t Type) IsKeyword() bool { return t >= And && t <= While }

// Position is a location in a source file. Line and Column are 1-based;
// Offset is the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical element. Literal carries the decoded payload for
// String (unquoted text) and Number (float64) tokens and is nil otherwise.
type Token struct {
	Type    Type
	Lexeme  string
	Literal any
	Pos     Position
}

// End returns the position immediately after the token. Multi-line string
// lexemes advance the line count.
func (t Token) End() Position {
	end := t.Pos
	end.Offset += len(t.Lexeme)
	if nl := strings.Count(t.Lexeme, "\n"); nl > 0 {
		end.Line += nl
		end.Column = len(t.Lexeme) - strings.LastIndexByte(t.Lexeme, '\n')
	} else {
		end.Column += len(t.Lexeme)
	}
	return end
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "eof"
	case Ident, String, Number:
		return fmt.Sprintf("%s %q", t.Type, t.Lexeme)
	default:
		return fmt.Sprintf("%q", t.Lexeme)
	}
}
