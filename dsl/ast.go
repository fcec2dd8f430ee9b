package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Document is an overlay job:
//
//	overlay Card v1 {
//	  resources { font Ubuntu { src: "Ubuntu-Medium.ttf" } }
//	  output { format: "jpeg"; quality: 90 }
//	  image "source.jpg" {
//	    text lines 3 width 25 x 40 y 40 { "Thanks for using our library!" }
//	  }
//	}
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'overlay' @Ident"`
	Version  string         `parser:"@Ident?"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is exactly one of resources, output or image.
type Section struct {
	Resources *Block        `parser:"  'resources' @@"`
	Output    *Block        `parser:"| 'output' @@"`
	Image     *ImageSection `parser:"| @@"`
}

// Kind names the section for diagnostics.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Resources != nil:
		return "resources"
	case s.Output != nil:
		return "output"
	case s.Image != nil:
		return "image"
	}
	return "unknown"
}

// ImageSection names the source image; its body holds text commands.
type ImageSection struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Src  Quoted         `parser:"'image' @String"`
	Body *Block         `parser:"@@"`
}

// Image returns the first image section, or nil.
func (d *Document) Image() *ImageSection {
	for _, s := range d.Sections {
		if s.Image != nil {
			return s.Image
		}
	}
	return nil
}

// Block is a braced list of statements separated by newlines or semicolons.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Commands returns the commands in b named name, in order. A nil block has none.
func (b *Block) Commands(name string) []*Command {
	if b == nil {
		return nil
	}
	var out []*Command
	for _, stmt := range b.Statements {
		if stmt.Command != nil && stmt.Command.Name == name {
			out = append(out, stmt.Command)
		}
	}
	return out
}

// Text joins the string literal statements in b with a single space, so a long
// text can be split over several lines.
func (b *Block) Text() string {
	if b == nil {
		return ""
	}
	var parts []string
	for _, stmt := range b.Statements {
		if stmt.Text != nil {
			parts = append(parts, string(*stmt.Text))
		}
	}
	return strings.Join(parts, " ")
}

type Statement struct {
	Assignment *Assignment `parser:"  @@"`
	Command    *Command    `parser:"| @@"`
	Text       *Quoted     `parser:"| @String"`
}

// Assignment is "key: value".
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Command is a keyword followed by free-form arguments and an optional body,
// e.g. `color Ink = #fff` or `text Heading x 40 { "..." }`.
type Command struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name string         `parser:"@Ident"`
	Args []*Token       `parser:"@@*"`
	Body *Block         `parser:"( Newline* @@ )?"`
}

// Arg returns the text of argument i, or "" when absent.
func (c *Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i].Text
}

type Value struct {
	Str    *Quoted `parser:"  @String"`
	Number *string `parser:"| @Number"`
	Color  *string `parser:"| @Color"`
	List   *List   `parser:"| @@"`
	Words  *Words  `parser:"| @@"`
}

// Text flattens the value: lists are space separated, bare words are joined by spaces.
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.Str != nil:
		return string(*v.Str)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.List != nil:
		parts := make([]string, 0, len(v.List.Items))
		for _, item := range v.List.Items {
			if s := item.Text(); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case v.Words != nil:
		return v.Words.String()
	}
	return ""
}

// List is `[a, b, c]`.
type List struct {
	Items []*Value `parser:"'[' Newline* ( @@ ( ( ',' | ';' | Newline+ ) Newline* @@ )* )? Newline* ']'"`
}

// Token is one lexical token kept verbatim, used for command arguments.
type Token struct {
	Kind string         `json:"kind"`
	Text string         `json:"text"` // unquoted for strings
	Raw  string         `json:"raw"`
	Pos  lexer.Position `json:"-"`
}

// Parse implements participle.Parseable: any token up to the end of the statement.
func (t *Token) Parse(lex *lexer.PeekingLexer) error {
	if endsStatement(lex.Peek()) {
		return participle.NextMatch
	}
	tok, err := takeToken(lex)
	if err != nil {
		return err
	}
	*t = tok
	return nil
}

// Words is an unquoted value such as `Ubuntu` or `center`, running to the end of
// the statement, or to a ',' or ']' when inside a list.
type Words struct {
	Tokens []*Token
}

// Parse implements participle.Parseable.
func (w *Words) Parse(lex *lexer.PeekingLexer) error {
	depth := 0
	for {
		next := lex.Peek()
		if endsStatement(next) {
			break
		}
		if next.Type == punctKind {
			if depth == 0 && (next.Value == "," || next.Value == "]") {
				break
			}
			switch next.Value {
			case "(", "[":
				depth++
			case ")", "]":
				depth--
			}
		}
		tok, err := takeToken(lex)
		if err != nil {
			return err
		}
		w.Tokens = append(w.Tokens, &tok)
	}
	if len(w.Tokens) == 0 {
		return participle.NextMatch
	}
	return nil
}

func (w *Words) String() string {
	parts := make([]string, len(w.Tokens))
	for i, t := range w.Tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

func takeToken(lex *lexer.PeekingLexer) (Token, error) {
	tok := lex.Next()
	if tok.EOF() {
		return Token{}, participle.NextMatch
	}
	name, ok := kindNames[tok.Type]
	if !ok {
		name = fmt.Sprintf("#%d", tok.Type)
	}
	text := tok.Value
	if tok.Type == stringKind {
		unquoted, err := strconv.Unquote(tok.Value)
		if err != nil {
			return Token{}, fmt.Errorf("%s: %w", tok.Pos, err)
		}
		text = unquoted
	}
	return Token{Kind: name, Text: text, Raw: tok.Value, Pos: tok.Pos}, nil
}

// Quoted is a string literal, unquoted with Go escape rules on capture.
type Quoted string

// Capture implements participle.Capture.
func (q *Quoted) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	s, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*q = Quoted(s)
	return nil
}
