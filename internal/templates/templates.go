package templates

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/toyz/svcmaker/internal/errors"
)

// StubData holds the named fields every stub template is rendered from
type StubData struct {
	Namespace  string   // namespace of the generated type
	ClassName  string   // declared type name
	Uses       []string // fully-qualified imports
	Implements string   // short name of the implemented interface, if any
	Model      string   // short name of the backing model, if any
	ModelFQN   string   // fully-qualified name of the backing model
}

// RenderStub renders the named registry template with data
func RenderStub(name string, data *StubData) (string, error) {
	templateStr, ok := DefaultTemplateRegistry.Get(name)
	if !ok {
		return "", errors.Newf(errors.TemplateErrorCode, "template not found: %s", name).
			WithSuggestion("Available templates: " + strings.Join(DefaultTemplateRegistry.Names(), ", "))
	}
	return executeTemplate(name, templateStr, data)
}

// implements renders the interface clause of a class declaration
func implements(iface string) string {
	if iface == "" {
		return ""
	}
	return " implements " + iface
}

// executeTemplate executes a stub template with the given data
func executeTemplate(name, templateStr string, data interface{}) (string, error) {
	funcMap := template.FuncMap{
		"useBlock":   useBlock,
		"implements": implements,
	}

	tmpl, err := template.New(name).Funcs(funcMap).Option("missingkey=error").Parse(templateStr)
	if err != nil {
		return "", errors.WrapTemplateError(name, "parse", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}

	return buf.String(), nil
}
