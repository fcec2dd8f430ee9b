package dsl

import (
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

var jobParser = participle.MustBuild[Document](
	participle.Lexer(jobLexer),
	participle.Elide("Whitespace", "Comment", "HashComment"),
)

// Parse reads an overlay job from r.
func Parse(r io.Reader) (*Document, error) {
	return jobParser.Parse("", r)
}

// ParseString parses an overlay job held in a string.
func ParseString(input string) (*Document, error) {
	return jobParser.ParseString("", input)
}

// ParseFile parses the job file at path; error positions carry the file name.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return jobParser.Parse(path, f)
}
