package patcher

import (
	"strings"

	"github.com/toyz/svcmaker/internal/errors"
	"github.com/toyz/svcmaker/internal/models"
)

// Import is a top-level `use` statement of a provider document
type Import struct {
	FQN   string // imported name without leading separator
	Alias string // local name the file refers to the import by
	Line  int    // 1-based line of the statement
	start int    // offset of the `use` keyword
}

// Region is the brace-delimited body of a function
type Region struct {
	Open  int // offset of '{'
	Close int // offset of the matching '}'
	Line  int // line of '{'
}

// Document is the analyzed form of a provider file
type Document struct {
	source       string
	tokens       []token
	Namespace    string
	namespaceEnd int // offset just past the namespace `;` or `{`, -1 if absent
	openTagEnd   int // offset just past `<?php`, -1 if absent
	Imports      []Import
	Declared     []string // names of classes, interfaces, traits and enums declared at top level
	eol          string   // line terminator inserted lines end with
}

var declarationKeywords = []string{"class", "interface", "trait", "enum"}

// Parse tokenizes source and collects its namespace, imports and declarations
func Parse(source string) (*Document, error) {
	tokens, err := tokenize(source)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		source:       source,
		tokens:       tokens,
		namespaceEnd: -1,
		openTagEnd:   -1,
		eol:          "\n",
	}

	if strings.Contains(source, "\r\n") {
		doc.eol = "\r\n"
	}

	if i := strings.Index(source, "<?php"); i >= 0 {
		doc.openTagEnd = i + len("<?php")
	}

	// top is the depth of top-level statements: 1 inside a braced namespace
	depth, top := 0, 0
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch {
		case t.isPunct("{"):
			depth++
		case t.isPunct("}"):
			depth--
			if depth < top {
				top = 0
			}
		case depth != top:
			// only top-level statements matter
		case top == 0 && t.isKeyword("namespace") && doc.namespaceEnd < 0:
			j, name := i+1, ""
			if j < len(tokens) && tokens[j].kind == nameType {
				name = tokens[j].value
				j++
			}
			if j < len(tokens) && (tokens[j].isPunct(";") || tokens[j].isPunct("{")) {
				doc.Namespace = models.NormalizeFQN(name)
				doc.namespaceEnd = tokens[j].end()
				if tokens[j].isPunct("{") {
					depth++
					top = depth
				}
				i = j
			}
		case t.isKeyword("use") && !(i+1 < len(tokens) && tokens[i+1].isPunct("(")):
			imports, next := parseUse(tokens, i)
			doc.Imports = append(doc.Imports, imports...)
			i = next
		case isDeclarationKeyword(t) && i+1 < len(tokens) && tokens[i+1].kind == nameType && !isMemberAccess(tokens, i):
			doc.Declared = append(doc.Declared, tokens[i+1].value)
		}
	}

	return doc, nil
}

// parseUse reads a `use` statement starting at tokens[i] and returns the class
// imports it declares and the index of its terminating ';'. Function and const
// imports are consumed but not reported.
func parseUse(tokens []token, i int) ([]Import, int) {
	start := tokens[i]
	j := i + 1
	kindFilter := false
	if j < len(tokens) && (tokens[j].isKeyword("function") || tokens[j].isKeyword("const")) {
		kindFilter = true
		j++
	}

	var imports []Import
	prefix := ""
	add := func(name, alias string) {
		if kindFilter || name == "" {
			return
		}
		fqn := models.NormalizeFQN(models.JoinNamespace(prefix, name))
		if alias == "" {
			alias = models.ShortName(fqn)
		}
		imports = append(imports, Import{FQN: fqn, Alias: alias, Line: start.line, start: start.offset})
	}

	name, alias := "", ""
	inGroup := false
	for ; j < len(tokens); j++ {
		t := tokens[j]
		switch {
		case t.isPunct(";"):
			add(name, alias)
			return imports, j
		case t.isPunct("{"):
			// group use: `use App\Models\{User, Post as Article};`
			prefix = models.NormalizeFQN(name)
			name, alias = "", ""
			inGroup = true
		case t.isPunct("}") && inGroup:
			add(name, alias)
			name, alias = "", ""
			inGroup = false
		case t.isPunct(","):
			add(name, alias)
			name, alias = "", ""
		case t.isPunct(`\`):
			// trailing separator of a group prefix
		case t.isKeyword("as") && name != "":
			if j+1 < len(tokens) && tokens[j+1].kind == nameType {
				alias = tokens[j+1].value
				j++
			}
		case t.kind == nameType:
			name = t.value
		default:
			// tokens outside the import grammar are ignored until the statement ends
		}
	}

	return imports, len(tokens)
}

// isDeclarationKeyword reports whether t starts a type declaration
func isDeclarationKeyword(t token) bool {
	for _, keyword := range declarationKeywords {
		if t.isKeyword(keyword) {
			return true
		}
	}
	return false
}

// isMemberAccess reports whether tokens[i] follows '::' or '->', as in Foo::class
func isMemberAccess(tokens []token, i int) bool {
	if i < 2 {
		return false
	}
	prev, before := tokens[i-1], tokens[i-2]
	return (before.isPunct(":") && prev.isPunct(":")) || (before.isPunct("-") && prev.isPunct(">"))
}

// significantText returns the body of region with whitespace and comments removed
func (d *Document) significantText(region Region) string {
	var text strings.Builder
	for _, t := range d.tokens {
		if t.offset > region.Open && t.offset < region.Close {
			text.WriteString(t.value)
		}
	}
	return text.String()
}

// FindImport returns the import of fqn, matching case-insensitively as PHP does
func (d *Document) FindImport(fqn string) (Import, bool) {
	fqn = models.NormalizeFQN(fqn)
	for _, imp := range d.Imports {
		if strings.EqualFold(imp.FQN, fqn) {
			return imp, true
		}
	}
	return Import{}, false
}

// NameInUse reports whether a local name is taken by an import or a declaration
func (d *Document) NameInUse(name string) bool {
	for _, imp := range d.Imports {
		if strings.EqualFold(imp.Alias, name) {
			return true
		}
	}
	for _, declared := range d.Declared {
		if strings.EqualFold(declared, name) {
			return true
		}
	}
	return false
}

// FindFunction locates the body of the first function named name that has one
func (d *Document) FindFunction(name string) (Region, error) {
	tokens := d.tokens
	for i := 0; i+1 < len(tokens); i++ {
		if !tokens[i].isKeyword("function") || isMemberAccess(tokens, i) {
			continue
		}
		next := i + 1
		if next < len(tokens) && tokens[next].isPunct("&") {
			next++
		}
		if next >= len(tokens) || !tokens[next].isKeyword(name) {
			continue
		}

		open, ok := findBodyOpen(tokens, next+1)
		if !ok {
			continue
		}

		end, err := matchBrace(tokens, open)
		if err != nil {
			return Region{}, err
		}
		return Region{Open: tokens[open].offset, Close: tokens[end].offset, Line: tokens[open].line}, nil
	}

	return Region{}, errors.NewRegionNotFound(name)
}

// findBodyOpen skips a parameter list and optional return type starting at
// tokens[i] and returns the index of the body's '{'. Declarations without a
// body end in ';' and report false.
func findBodyOpen(tokens []token, i int) (int, bool) {
	if i >= len(tokens) || !tokens[i].isPunct("(") {
		return 0, false
	}

	parens := 0
	for ; i < len(tokens); i++ {
		switch {
		case tokens[i].isPunct("("):
			parens++
		case tokens[i].isPunct(")"):
			parens--
		case parens > 0:
			// inside the parameter list
		case tokens[i].isPunct("{"):
			return i, true
		case tokens[i].isPunct(";"), tokens[i].isPunct("}"):
			return 0, false
		}
	}
	return 0, false
}

// matchBrace returns the index of the '}' pairing with the '{' at tokens[open]
// using a depth counter over significant tokens
func matchBrace(tokens []token, open int) (int, error) {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch {
		case tokens[i].isPunct("{"):
			depth++
		case tokens[i].isPunct("}"):
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, errors.NewMalformedDocument("function body opened here is never closed", tokens[open].line, tokens[open].column)
}
