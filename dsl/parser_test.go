package dsl_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByLCY/imprint/dsl"
)

const sampleDSL = `
overlay Card v1 {
  resources {
    font Ubuntu {
      src: "Ubuntu-Medium.ttf"
      fallback: "embed:goregular"
    }

    color Ink = #FFFFFF

    style Heading {
      font: Ubuntu
      size: 24pt
      line-height: 36px
    }
  }

  output {
    format: "jpeg"
    quality: 90
  }

  image "source.jpg" {
    text Heading lines 3 width 25 align left color Ink x 40 y 40 { "Thanks for using our image text PHP library!" }
    text Heading widths 30 size 14pt x 40 y 140 color #000000 {
      "Hello, ${user.name}!"
    }
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Card" || doc.Version != "v1" {
		t.Fatalf("unexpected header: %q %q", doc.Name, doc.Version)
	}
	var kinds []string
	for _, s := range doc.Sections {
		kinds = append(kinds, s.Kind())
	}
	if strings.Join(kinds, ",") != "resources,output,image" {
		t.Fatalf("unexpected section kinds: %v", kinds)
	}
}

func TestParseResources(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	res := doc.Sections[0].Resources
	if res == nil || len(res.Statements) != 3 {
		t.Fatalf("expected 3 resource statements, got %+v", res)
	}

	fonts := res.Commands("font")
	if len(fonts) != 1 || fonts[0].Arg(0) != "Ubuntu" {
		t.Fatalf("expected one font command, got %+v", fonts)
	}
	src := fonts[0].Body.Statements[0].Assignment
	if src == nil || src.Key != "src" || src.Value.Str == nil || string(*src.Value.Str) != "Ubuntu-Medium.ttf" {
		t.Fatalf("unexpected font src: %+v", src)
	}

	colors := res.Commands("color")
	if len(colors) != 1 || len(colors[0].Args) != 3 {
		t.Fatalf("unexpected color command: %+v", colors)
	}
	if arg := colors[0].Args[2]; arg.Kind != "Color" || arg.Text != "#FFFFFF" {
		t.Fatalf("six digit color should lex as one token, got %+v", arg)
	}

	style := res.Commands("style")[0]
	if style.Body == nil || len(style.Body.Statements) != 3 {
		t.Fatalf("style should carry 3 assignments, got %+v", style)
	}
	size := style.Body.Statements[1].Assignment
	if size == nil || size.Value.Number == nil || *size.Value.Number != "24pt" {
		t.Fatalf("unexpected size assignment: %+v", size)
	}
	fontRef := style.Body.Statements[0].Assignment
	if fontRef == nil || fontRef.Value.Words == nil || fontRef.Value.Text() != "Ubuntu" {
		t.Fatalf("font reference should be a bare word, got %+v", fontRef)
	}
}

func TestParseImageSection(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	out := doc.Sections[1].Output
	if out == nil || len(out.Statements) != 2 {
		t.Fatalf("output section missing statements: %+v", out)
	}

	img := doc.Image()
	if img == nil || string(img.Src) != "source.jpg" {
		t.Fatalf("unexpected image section: %+v", img)
	}
	texts := img.Body.Commands("text")
	if len(texts) != 2 {
		t.Fatalf("expected 2 text commands, got %d", len(texts))
	}
	if got := tokensToString(texts[0].Args); got != "Heading lines 3 width 25 align left color Ink x 40 y 40" {
		t.Fatalf("unexpected text args: %s", got)
	}
	if got := texts[0].Body.Text(); got != "Thanks for using our image text PHP library!" {
		t.Fatalf("unexpected text content: %q", got)
	}
	if got := texts[1].Body.Text(); !strings.Contains(got, "${user.name}") {
		t.Fatalf("expected interpolation in text literal, got %s", got)
	}
	if last := texts[1].Args[len(texts[1].Args)-1]; last.Kind != "Color" || last.Text != "#000000" {
		t.Fatalf("unexpected trailing color argument: %+v", last)
	}
}

func TestBlockTextJoinsLiterals(t *testing.T) {
	doc, err := dsl.ParseString(`overlay J {
  image "a.png" {
    text {
      "Hello"
      "world"; "again"
    }
  }
}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := doc.Image().Body.Commands("text")[0].Body.Text(); got != "Hello world again" {
		t.Fatalf("joined text = %q", got)
	}
	var empty *dsl.Block
	if empty.Text() != "" {
		t.Fatalf("nil block should have no text")
	}
}

func TestParseListValues(t *testing.T) {
	doc, err := dsl.ParseString(`overlay L {
  output { tags: [a b, "c d", 3] }
  image "a.png" { }
}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	v := doc.Sections[0].Output.Statements[0].Assignment.Value
	if v.List == nil || len(v.List.Items) != 3 {
		t.Fatalf("expected a 3 item list, got %+v", v)
	}
	if got := v.Text(); got != "a b c d 3" {
		t.Fatalf("flattened list = %q", got)
	}
}

func TestParseComments(t *testing.T) {
	doc, err := dsl.ParseString(`# job header
overlay C {
  // line comment
  image "a.png" {
    /* block
       comment */
    text color #fff { "x" } # trailing
  }
}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	cmd := doc.Image().Body.Commands("text")[0]
	if cmd.Arg(1) != "#fff" || cmd.Args[1].Kind != "Color" {
		t.Fatalf("three digit color lost to comment rule: %+v", cmd.Args)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.overlay")
	if err := os.WriteFile(path, []byte(sampleDSL), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := dsl.ParseFile(path)
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if doc.Image() == nil {
		t.Fatalf("image section missing")
	}
	if _, err := dsl.ParseFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseRejectsUnknownSection(t *testing.T) {
	_, err := dsl.ParseString(`overlay Bad v1 { page A4 { } }`)
	if err == nil {
		t.Fatalf("expected parse error for unknown section")
	}
}

func TestParseNumbers(t *testing.T) {
	doc, err := dsl.ParseString(`overlay N {
  image "a.png" {
    text Body widths 10 12 line-height 1.5x x -4 { "a" }
  }
}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Version != "" {
		t.Fatalf("version should be optional, got %q", doc.Version)
	}
	cmd := doc.Image().Body.Commands("text")[0]
	want := []string{"Body", "widths", "10", "12", "line-height", "1.5x", "x", "-4"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("expected %d args, got %s", len(want), tokensToString(cmd.Args))
	}
	for i, w := range want {
		if cmd.Args[i].Text != w {
			t.Fatalf("arg %d: got %q want %q", i, cmd.Args[i].Text, w)
		}
	}
	if cmd.Args[2].Kind != "Number" || cmd.Args[7].Kind != "Number" {
		t.Fatalf("expected numeric lexemes, got %+v / %+v", cmd.Args[2], cmd.Args[7])
	}
}

func tokensToString(parts []*dsl.Token) string {
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		values = append(values, p.Text)
	}
	return strings.Join(values, " ")
}
