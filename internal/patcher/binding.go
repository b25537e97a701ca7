package patcher

import (
	"fmt"

	"github.com/toyz/svcmaker/internal/models"
)

// containerReceiver is the expression a service provider reaches its container through
const containerReceiver = "$this->app"

// Line is one line of a generated statement; Depth counts extra indent units
// relative to the statement's first line
type Line struct {
	Text  string
	Depth int
}

// BuildBinding renders the registration statement for spec. impl and iface are
// the names the document refers to the types by, either an imported short name
// or a fully-qualified `\Name`.
//
// With an interface the abstract is mapped straight to the implementation.
// Without one, an implementation with a model dependency gets a factory that
// resolves the model from the container each time the binding is resolved.
func BuildBinding(spec models.BindingSpec, impl, iface string) []Line {
	method := spec.Mode.Method()

	switch {
	case spec.HasInterface():
		return []Line{{Text: fmt.Sprintf("%s->%s(%s::class, %s::class);", containerReceiver, method, iface, impl)}}
	case spec.Dependency != "":
		dependency := models.NamespaceSeparator + models.NormalizeFQN(spec.Dependency)
		return []Line{
			{Text: fmt.Sprintf("%s->%s(%s::class, function ($app) {", containerReceiver, method, impl)},
			{Text: fmt.Sprintf("return new %s($app->make(%s::class));", impl, dependency), Depth: 1},
			{Text: "});"},
		}
	default:
		return []Line{{Text: fmt.Sprintf("%s->%s(%s::class);", containerReceiver, method, impl)}}
	}
}
