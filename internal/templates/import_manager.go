package templates

import (
	"strings"

	"github.com/toyz/svcmaker/internal/models"
)

// UseList handles `use` statement generation and deduplication for stubs
type UseList struct {
	namespace string
	imports   []string
}

// NewUseList creates a use list for a file declared in namespace
func NewUseList(namespace string) *UseList {
	return &UseList{
		namespace: models.NormalizeFQN(namespace),
		imports:   make([]string, 0),
	}
}

// Add adds fully-qualified names, skipping duplicates and types that live in
// the file's own namespace
func (ul *UseList) Add(fqns ...string) {
	for _, fqn := range fqns {
		fqn = models.NormalizeFQN(fqn)
		if fqn == "" || models.NamespaceOf(fqn) == ul.namespace || ul.Contains(fqn) {
			continue
		}
		ul.imports = append(ul.imports, fqn)
	}
}

// Contains checks if a name is already imported
func (ul *UseList) Contains(fqn string) bool {
	fqn = models.NormalizeFQN(fqn)
	for _, existing := range ul.imports {
		if existing == fqn {
			return true
		}
	}
	return false
}

// Imports returns the imported names in insertion order
func (ul *UseList) Imports() []string {
	out := make([]string, len(ul.imports))
	copy(out, ul.imports)
	return out
}

// useStatement renders the canonical import form of a fully-qualified name
func useStatement(fqn string) string {
	return "use " + models.NormalizeFQN(fqn) + ";"
}

// useBlock renders a block of use statements surrounded by blank lines
func useBlock(imports []string) string {
	if len(imports) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString("\n")
	for _, fqn := range imports {
		result.WriteString(useStatement(fqn))
		result.WriteString("\n")
	}
	return result.String()
}
