package lang

import "github.com/rlox-lang/rlox/token"

// Symbol identifies one symbol of the rlox grammar. The low range mirrors the
// terminal tokens in token.Type order; node kinds produced by the parser
// follow.
type Symbol uint16

const (
	SymEOF Symbol = iota
	SymIdentifier
	SymString
	SymNumber
	SymLeftParen
	SymRightParen
	SymLeftBrace
	SymRightBrace
	SymComma
	SymDot
	SymMinus
	SymPlus
	SymSemicolon
	SymSlash
	SymStar
	SymBang
	SymBangEqual
	SymEqual
	SymEqualEqual
	SymGreater
	SymGreaterEqual
	SymLess
	SymLessEqual
	SymAnd
	SymClass
	SymElse
	SymFalse
	SymFun
	SymFor
	SymIf
	SymNil
	SymOr
	SymReturn
	SymSuper
	SymThis
	SymTrue
	SymVar
	SymWhile

	SymSourceFile
	SymVarDeclaration
	SymFunDeclaration
	SymClassDeclaration
	SymExpressionStatement
	SymBlock
	SymIfStatement
	SymWhileStatement
	SymReturnStatement
	SymAssignmentExpression
	SymBinaryExpression
	SymLogicalExpression
	SymUnaryExpression
	SymCallExpression
	SymGetExpression
	SymSetExpression
	SymGroupingExpression
	SymParameters
	SymArguments
)

type symbolInfo struct {
	name  string
	named bool
}

var symbolTable = [...]symbolInfo{
	SymEOF:        {"eof", false},
	SymIdentifier: {"identifier", true},
	SymString:     {"string", true},
	SymNumber:     {"number", true},

	SymLeftParen:  {"(", false},
	SymRightParen: {")", false},
	SymLeftBrace:  {"{", false},
	SymRightBrace: {"}", false},
	SymComma:      {",", false},
	SymDot:        {".", false},
	SymMinus:      {"-", false},
	SymPlus:       {"+", false},
	SymSemicolon:  {";", false},
	SymSlash:      {"/", false},
	SymStar:       {"*", false},

	SymBang:         {"!", false},
	SymBangEqual:    {"!=", false},
	SymEqual:        {"=", false},
	SymEqualEqual:   {"==", false},
	SymGreater:      {">", false},
	SymGreaterEqual: {">=", false},
	SymLess:         {"<", false},
	SymLessEqual:    {"<=", false},

	SymAnd:    {"and", false},
	SymClass:  {"class", false},
	SymElse:   {"else", false},
	SymFalse:  {"false", true},
	SymFun:    {"fun", false},
	SymFor:    {"for", false},
	SymIf:     {"if", false},
	SymNil:    {"nil", true},
	SymOr:     {"or", false},
	SymReturn: {"return", false},
	SymSuper:  {"super", false},
	SymThis:   {"this", true},
	SymTrue:   {"true", true},
	SymVar:    {"var", false},
	SymWhile:  {"while", false},

	SymSourceFile:           {"source_file", true},
	SymVarDeclaration:       {"var_declaration", true},
	SymFunDeclaration:       {"fun_declaration", true},
	SymClassDeclaration:     {"class_declaration", true},
	SymExpressionStatement:  {"expression_statement", true},
	SymBlock:                {"block", true},
	SymIfStatement:          {"if_statement", true},
	SymWhileStatement:       {"while_statement", true},
	SymReturnStatement:      {"return_statement", true},
	SymAssignmentExpression: {"assignment_expression", true},
	SymBinaryExpression:     {"binary_expression", true},
	SymLogicalExpression:    {"logical_expression", true},
	SymUnaryExpression:      {"unary_expression", true},
	SymCallExpression:       {"call_expression", true},
	SymGetExpression:        {"get_expression", true},
	SymSetExpression:        {"set_expression", true},
	SymGroupingExpression:   {"grouping_expression", true},
	SymParameters:           {"parameters", true},
	SymArguments:            {"arguments", true},
}

// TerminalSymbol maps a token type to its grammar symbol. The two enums are
// laid out in the same order.
func TerminalSymbol(t token.Type) Symbol {
	return Symbol(t)
}
