package dsl

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Newlines end statements, so they are real tokens; all other whitespace and comments are elided.
// Color must come before HashComment so "#FFF" is not swallowed as a comment.
var jobLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
	{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
	{Name: "HashComment", Pattern: `#[^\n]*`},
	{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:pt|px|%|x)?`},
	{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	{Name: "Punct", Pattern: `[][(),.=:;+*/%<>!?-]`},
	{Name: "LBrace", Pattern: `{`},
	{Name: "RBrace", Pattern: `}`},
	{Name: "Newline", Pattern: `\n+`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

var (
	kindNames = func() map[lexer.TokenType]string {
		out := map[lexer.TokenType]string{}
		for name, tt := range jobLexer.Symbols() {
			out[tt] = name
		}
		return out
	}()

	newlineKind = kind("Newline")
	lbraceKind  = kind("LBrace")
	rbraceKind  = kind("RBrace")
	punctKind   = kind("Punct")
	stringKind  = kind("String")
)

func kind(name string) lexer.TokenType {
	tt, ok := jobLexer.Symbols()[name]
	if !ok {
		panic(fmt.Sprintf("dsl: token kind %s not defined", name))
	}
	return tt
}

// endsStatement reports whether tok closes the current statement or opens a block.
func endsStatement(tok *lexer.Token) bool {
	if tok == nil || tok.EOF() {
		return true
	}
	switch tok.Type {
	case newlineKind, lbraceKind, rbraceKind:
		return true
	case punctKind:
		return tok.Value == ";"
	}
	return false
}
