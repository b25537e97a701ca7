package patcher

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/svcmaker/internal/errors"
)

// phpLexer splits PHP source into just enough token classes to find
// declarations and pair braces. Strings and comments are single tokens so
// braces inside them never affect depth. Rule order matters: the first
// matching rule wins.
var phpLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `(?s:/\*.*?\*/)|//[^\n]*|#(?:[^\[\n][^\n]*)?`},
	{Name: "String", Pattern: `'(?:\\[\s\S]|[^'\\])*'|"(?:\\[\s\S]|[^"\\])*"|` + "`(?:\\\\[\\s\\S]|[^`\\\\])*`"},
	{Name: "Unterminated", Pattern: `/\*|['"` + "`]"},
	{Name: "Variable", Pattern: `\$[A-Za-z_\x80-\x{10FFFF}][A-Za-z0-9_\x80-\x{10FFFF}]*`},
	{Name: "Name", Pattern: `\\?[A-Za-z_\x80-\x{10FFFF}][A-Za-z0-9_\x80-\x{10FFFF}]*(?:\\[A-Za-z_\x80-\x{10FFFF}][A-Za-z0-9_\x80-\x{10FFFF}]*)*`},
	{Name: "Number", Pattern: `[0-9][0-9_]*(?:\.[0-9_]+)?`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Punct", Pattern: `\S`},
})

var (
	symbols          = phpLexer.Symbols()
	commentType      = symbols["Comment"]
	unterminatedType = symbols["Unterminated"]
	whitespaceType   = symbols["Whitespace"]
	nameType         = symbols["Name"]
	punctType        = symbols["Punct"]
)

// token is a significant lexeme with its byte offset in the document
type token struct {
	kind   lexer.TokenType
	value  string
	offset int
	line   int
	column int
}

// end returns the offset just past the token
func (t token) end() int {
	return t.offset + len(t.value)
}

// isPunct reports whether the token is the given punctuation character
func (t token) isPunct(p string) bool {
	return t.kind == punctType && t.value == p
}

// isKeyword reports whether the token is the given keyword, case-insensitively
func (t token) isKeyword(keyword string) bool {
	return t.kind == nameType && strings.EqualFold(t.value, keyword)
}

// tokenize lexes document and returns the tokens that are neither whitespace
// nor comments
func tokenize(document string) ([]token, error) {
	lex, err := phpLexer.LexString("", document)
	if err != nil {
		return nil, errors.NewMalformedDocument(err.Error(), 0, 0)
	}

	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, errors.NewMalformedDocument(err.Error(), 0, 0)
	}

	tokens := make([]token, 0, len(raw)/2)
	for _, t := range raw {
		if t.EOF() {
			break
		}
		switch t.Type {
		case whitespaceType, commentType:
			continue
		case unterminatedType:
			return nil, errors.NewMalformedDocument("unterminated string or comment", t.Pos.Line, t.Pos.Column)
		}
		tokens = append(tokens, token{
			kind:   t.Type,
			value:  t.Value,
			offset: t.Pos.Offset,
			line:   t.Pos.Line,
			column: t.Pos.Column,
		})
	}

	return tokens, nil
}
