package templates

import (
	"strings"

	"github.com/toyz/svcmaker/internal/models"
)

// TemplateUtils provides common naming utilities for stub generation
type TemplateUtils struct{}

// NewTemplateUtils creates a new template utilities instance
func NewTemplateUtils() *TemplateUtils {
	return &TemplateUtils{}
}

// BuildClassName appends the kind suffix to a base name
func (tu *TemplateUtils) BuildClassName(base string, kind models.Kind) string {
	return base + kind.Suffix()
}

// BuildInterfaceName creates an interface name from a class name
func (tu *TemplateUtils) BuildInterfaceName(className string) string {
	return className + "Interface"
}

// TemplateFor selects the stub template for a kind. Interfaces generated for a
// repository carry the CRUD contract.
func (tu *TemplateUtils) TemplateFor(kind models.Kind, repositoryContract bool) string {
	switch kind {
	case models.KindInterface:
		if repositoryContract {
			return RepositoryInterfaceTemplate
		}
		return InterfaceTemplate
	case models.KindRepository:
		return RepositoryTemplate
	case models.KindService:
		return ServiceTemplate
	default:
		return TraitTemplate
	}
}

// ModelFQN qualifies a model name with the models namespace unless it is
// already fully qualified
func (tu *TemplateUtils) ModelFQN(modelsNamespace, model string) string {
	model = strings.ReplaceAll(model, "/", models.NamespaceSeparator)
	if model == "" {
		return ""
	}
	if strings.HasPrefix(model, models.NamespaceSeparator) {
		return models.NormalizeFQN(model)
	}
	return models.JoinNamespace(modelsNamespace, model)
}

// DefaultTemplateUtils provides a global instance for convenience
var DefaultTemplateUtils = NewTemplateUtils()
