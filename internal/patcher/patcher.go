package patcher

import (
	"sort"
	"strings"
	"unicode"

	"github.com/toyz/svcmaker/internal/errors"
	"github.com/toyz/svcmaker/internal/models"
)

// DefaultFunction is the registration function bindings are added to
const DefaultFunction = "register"

// Options controls how statements are laid out in the provider document
type Options struct {
	// IndentUnit is one level of indentation. An empty body is indented one
	// unit deeper than its closing brace; continuation lines one unit deeper
	// than the statement.
	IndentUnit string
	// SkipDuplicateBinding leaves the body alone when an identical
	// statement is already registered
	SkipDuplicateBinding bool
}

// DefaultOptions returns the layout used by a stock Laravel provider
func DefaultOptions() Options {
	return Options{
		IndentUnit:           "    ",
		SkipDuplicateBinding: true,
	}
}

// Result is the outcome of a successful patch
type Result struct {
	Content        string   // the patched document
	AddedImports   []string // fully-qualified names of inserted imports, in order
	Statement      string   // the binding statement as rendered into the body
	BindingSkipped bool     // an identical binding was already present
}

// Changed reports whether the document differs from its input
func (r *Result) Changed() bool {
	return len(r.AddedImports) > 0 || !r.BindingSkipped
}

// ProviderPatcher inserts imports and binding statements into provider documents
type ProviderPatcher struct {
	options Options
}

// NewProviderPatcher creates a patcher; an empty indent unit falls back to four spaces
func NewProviderPatcher(options Options) *ProviderPatcher {
	if options.IndentUnit == "" {
		options.IndentUnit = DefaultOptions().IndentUnit
	}
	return &ProviderPatcher{options: options}
}

// Patch returns document with the imports and the binding statement spec
// requires. The statement goes right before the closing brace of function.
// The input is never modified: on error the caller keeps the original text.
func (p *ProviderPatcher) Patch(document string, spec models.BindingSpec, function string) (*Result, error) {
	if function == "" {
		function = DefaultFunction
	}
	if err := spec.Validate(); err != nil {
		return nil, errors.Wrap(errors.ValidationErrorCode, "invalid binding", err)
	}

	doc, err := Parse(document)
	if err != nil {
		return nil, err
	}

	region, err := doc.FindFunction(function)
	if err != nil {
		return nil, err
	}

	names, missing := planImports(doc, spec)
	lines := BuildBinding(spec, names.implementation, names.iface)

	result := &Result{AddedImports: missing}
	var edits []edit

	if p.options.SkipDuplicateBinding && containsStatement(doc.significantText(region), lines) {
		result.BindingSkipped = true
	} else {
		e := p.statementEdit(document, region, lines, doc.eol)
		result.Statement = strings.TrimSpace(e.text)
		edits = append(edits, e)
	}

	if len(missing) > 0 {
		edits = append(edits, importEdit(doc, missing))
	}

	result.Content = applyEdits(document, edits)
	return result, nil
}

// statementEdit places the rendered statement before the region's closing brace
func (p *ProviderPatcher) statementEdit(src string, region Region, lines []Line, eol string) edit {
	closeLine := lineStartOf(src, region.Close)
	closeIndent := leadingSpace(src[closeLine:])

	unit := p.options.IndentUnit
	indent, found := bodyIndent(src[region.Open+1 : region.Close])
	if strings.Contains(indent+closeIndent, "\t") {
		unit = "\t"
	}
	if !found {
		indent = closeIndent + unit
	}

	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = indent + strings.Repeat(unit, line.Depth) + line.Text
	}
	statement := strings.Join(rendered, eol)
	if closeLine > region.Open && closeLine+len(closeIndent) == region.Close {
		// the closing brace sits on its own line
		return edit{offset: closeLine, text: statement + eol}
	}

	return edit{offset: region.Close, text: eol + statement + eol + closeIndent}
}

// bodyIndent returns the indentation of the first non-blank line of a function
// body, skipping whatever shares the line with the opening brace
func bodyIndent(body string) (string, bool) {
	lines := strings.Split(body, "\n")
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) != "" {
			return leadingSpace(line), true
		}
	}
	return "", false
}

// containsStatement reports whether the significant text of a body already
// holds the statement, ignoring whitespace differences
func containsStatement(body string, lines []Line) bool {
	var statement strings.Builder
	for _, line := range lines {
		statement.WriteString(line.Text)
	}
	return strings.Contains(stripSpace(body), stripSpace(statement.String()))
}

// applyEdits inserts every edit into src; offsets refer to the original text
func applyEdits(src string, edits []edit) string {
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].offset > edits[j].offset
	})
	for _, e := range edits {
		src = src[:e.offset] + e.text + src[e.offset:]
	}
	return src
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
