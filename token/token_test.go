package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ      Type
		expected string
	}{
		{LeftParen, "("},
		{BangEqual, "!="},
		{Ident, "identifier"},
		{Number, "number"},
		{While, "while"},
		{EOF, "eof"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.typ.String())
		})
	}

	assert.Equal(t, "Type(999)", Type(999).String())
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, And.IsKeyword())
	assert.True(t, While.IsKeyword())
	assert.True(t, Super.IsKeyword())
	assert.False(t, Ident.IsKeyword())
	assert.False(t, BangEqual.IsKeyword())
	assert.False(t, EOF.IsKeyword())
}

func TestTokenEnd(t *testing.T) {
	tok := Token{
		Type:   Ident,
		Lexeme: "counter",
		Pos:    Position{Line: 3, Column: 5, Offset: 40},
	}
	end := tok.End()
	assert.Equal(t, 3, end.Line)
	assert.Equal(t, 12, end.Column)
	assert.Equal(t, 47, end.Offset)
}

func TestTokenEndMultilineString(t *testing.T) {
	// Strings may span lines; End must land on the later line.
	tok := Token{
		Type:   String,
		Lexeme: "\"ab\ncd\"",
		Pos:    Position{Line: 1, Column: 1, Offset: 0},
	}
	end := tok.End()
	assert.Equal(t, 2, end.Line)
	assert.Equal(t, 4, end.Column)
	assert.Equal(t, 7, end.Offset)
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "12:3", Position{Line: 12, Column: 3}.String())
}
