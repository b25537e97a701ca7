package patcher

import (
	"strings"

	"github.com/toyz/svcmaker/internal/models"
)

// edit inserts text at a byte offset of the original document
type edit struct {
	offset int
	text   string
}

// localNames are the names the binding statement refers to each type by
type localNames struct {
	implementation string
	iface          string
}

// planImports decides how the binding refers to each type and which imports
// are missing. Already imported names keep their alias. A short name that is
// taken by another import or declaration is not imported; the binding uses
// the fully-qualified name instead.
func planImports(doc *Document, spec models.BindingSpec) (localNames, []string) {
	var missing []string
	claimed := make(map[string]bool)

	resolve := func(fqn string) string {
		if imp, ok := doc.FindImport(fqn); ok {
			return imp.Alias
		}
		short := models.ShortName(fqn)
		key := strings.ToLower(short)
		if doc.NameInUse(short) || claimed[key] {
			return models.NamespaceSeparator + models.NormalizeFQN(fqn)
		}
		claimed[key] = true
		missing = append(missing, models.NormalizeFQN(fqn))
		return short
	}

	names := localNames{implementation: resolve(spec.Implementation)}
	if spec.HasInterface() {
		names.iface = resolve(spec.Interface)
	}

	return names, missing
}

// importEdit builds the insertion of `use` lines for fqns. New imports go
// directly above the first existing top-level import. Without imports they
// open a new block after the namespace declaration (or the open tag),
// separated from what follows by a blank line.
func importEdit(doc *Document, fqns []string) edit {
	src, eol := doc.source, doc.eol

	if len(doc.Imports) > 0 {
		first := doc.Imports[0]
		offset := lineStartOf(src, first.start)
		indent := src[offset:first.start]
		if strings.TrimSpace(indent) != "" {
			// the import shares its line with other code
			offset, indent = first.start, ""
		}
		var text strings.Builder
		for _, fqn := range fqns {
			text.WriteString(indent + useStatement(fqn) + eol)
		}
		return edit{offset: offset, text: text.String()}
	}

	anchor := doc.namespaceEnd
	if anchor < 0 {
		anchor = doc.openTagEnd
	}

	// match the indentation of the code that follows, as inside a braced namespace
	indent := ""
	if anchor >= 0 {
		if first := doc.firstTokenAfter(anchor); first < len(src) {
			indent = leadingSpace(src[lineStartOf(src, first):first])
		}
	}

	block := make([]string, len(fqns))
	for i, fqn := range fqns {
		block[i] = indent + useStatement(fqn)
	}
	lines := strings.Join(block, eol)

	if anchor < 0 {
		return edit{offset: 0, text: lines + eol + eol}
	}

	next := nextLineStart(src, anchor)
	if next < 0 || doc.firstTokenAfter(anchor) < next {
		// the anchor line continues with code; break the line right after it
		return edit{offset: anchor, text: eol + lines + eol}
	}
	if after := nextLineStart(src, next); after >= 0 && strings.TrimSpace(src[next:after]) == "" {
		next = after
	}

	return edit{offset: next, text: lines + eol + eol}
}

// useStatement renders the canonical import form of a fully-qualified name
func useStatement(fqn string) string {
	return "use " + models.NormalizeFQN(fqn) + ";"
}

// firstTokenAfter returns the offset of the first significant token at or
// after offset, or the document length
func (d *Document) firstTokenAfter(offset int) int {
	for _, t := range d.tokens {
		if t.offset >= offset {
			return t.offset
		}
	}
	return len(d.source)
}

// lineStartOf returns the offset of the first byte of the line containing offset
func lineStartOf(src string, offset int) int {
	return strings.LastIndexByte(src[:offset], '\n') + 1
}

// nextLineStart returns the offset of the line after the one containing
// offset, or -1 on the last line
func nextLineStart(src string, offset int) int {
	i := strings.IndexByte(src[offset:], '\n')
	if i < 0 {
		return -1
	}
	return offset + i + 1
}
