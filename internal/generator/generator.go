package generator

import (
	"path"

	"github.com/toyz/svcmaker/internal/errors"
	"github.com/toyz/svcmaker/internal/models"
	"github.com/toyz/svcmaker/internal/templates"
)

// Layout describes where artifacts live in the target project
type Layout struct {
	AppPath         string // application source directory, relative to the project root
	RootNamespace   string // PSR-4 namespace mapped to AppPath
	ModelsNamespace string // namespace unqualified model names resolve in
}

// Store is the file lookup the generator needs to refuse existing targets
type Store interface {
	Exists(path string) (bool, error)
}

// Options tune a single Generate call
type Options struct {
	// Model names the class the repository or service is constructed with.
	// Repositories default to their own base name.
	Model string
	// WithInterface makes the class implement <TypeName>Interface
	WithInterface bool
	// RepositoryContract gives a generated interface the repository CRUD methods
	RepositoryContract bool
}

// Generator turns a kind and a requested name into an artifact ready to be written
type Generator struct {
	layout Layout
	store  Store
	utils  *templates.TemplateUtils
}

// NewGenerator creates a new generator for the given project layout
func NewGenerator(layout Layout, store Store) *Generator {
	return &Generator{
		layout: layout,
		store:  store,
		utils:  templates.DefaultTemplateUtils,
	}
}

// Generate renders the artifact for kind and rawName. rawName may nest the
// type with '/' or '\': "Billing/Invoice" becomes
// <app>/Services/Billing/InvoiceService.php in <root>\Services\Billing.
func (g *Generator) Generate(kind models.Kind, rawName string, opts Options) (*models.Artifact, error) {
	name, err := models.ParseName(rawName)
	if err != nil {
		return nil, errors.NewValidationError("name", "identifiers separated by / or \\", rawName).
			WithSuggestion(err.Error())
	}

	className := g.utils.BuildClassName(name.Base, kind)
	artifact := &models.Artifact{
		TargetPath: path.Join(g.layout.AppPath, kind.Directory(), name.Dir(), className+".php"),
		Namespace:  models.JoinNamespace(g.layout.RootNamespace, kind.Directory(), name.NamespaceSuffix()),
		TypeName:   className,
		Kind:       kind,
	}

	exists, err := g.store.Exists(artifact.TargetPath)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewAlreadyExists(kind.String(), artifact.TargetPath)
	}

	data := &templates.StubData{
		Namespace: artifact.Namespace,
		ClassName: className,
	}
	uses := templates.NewUseList(artifact.Namespace)

	if opts.WithInterface && (kind == models.KindRepository || kind == models.KindService) {
		artifact.InterfaceFQN = g.InterfaceFQN(kind, name)
		data.Implements = models.ShortName(artifact.InterfaceFQN)
		uses.Add(artifact.InterfaceFQN)
	}

	model := opts.Model
	if model == "" && kind == models.KindRepository {
		model = name.Base
	}
	if model != "" && (kind == models.KindRepository || kind == models.KindService) {
		artifact.ModelFQN = g.utils.ModelFQN(g.layout.ModelsNamespace, model)
		if err := models.ValidateFQN(artifact.ModelFQN); err != nil {
			return nil, errors.NewValidationError("model", "a class name", model).WithSuggestion(err.Error())
		}
		data.Model = models.ShortName(artifact.ModelFQN)
		data.ModelFQN = artifact.ModelFQN
		uses.Add(artifact.ModelFQN)
	}

	data.Uses = uses.Imports()

	content, err := templates.RenderStub(g.utils.TemplateFor(kind, opts.RepositoryContract), data)
	if err != nil {
		return nil, err
	}
	artifact.Content = content

	return artifact, nil
}

// InterfaceFQN returns the interface a class of kind generated from name
// implements: make:interface applied to "<name><Kind>"
func (g *Generator) InterfaceFQN(kind models.Kind, name models.QualifiedName) string {
	base := g.utils.BuildClassName(name.Base, kind)
	return models.JoinNamespace(
		g.layout.RootNamespace,
		models.KindInterface.Directory(),
		name.NamespaceSuffix(),
		g.utils.BuildInterfaceName(base),
	)
}

// InterfaceName returns the raw name make:interface is given for the
// interface of a class of kind generated from rawName
func InterfaceName(kind models.Kind, rawName string) string {
	return rawName + kind.Suffix()
}

// BindingFor builds the container binding for a generated class. Without an
// interface a repository is bound through a factory that hands it its model;
// a service is bound to itself and left to autowiring.
func BindingFor(artifact *models.Artifact, mode models.Mode) models.BindingSpec {
	spec := models.BindingSpec{
		Implementation: artifact.FQN(),
		Interface:      artifact.InterfaceFQN,
		Mode:           mode,
	}
	if !spec.HasInterface() && artifact.Kind == models.KindRepository {
		spec.Dependency = artifact.ModelFQN
	}
	return spec
}
