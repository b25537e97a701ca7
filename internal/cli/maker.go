package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/toyz/svcmaker/internal/config"
	"github.com/toyz/svcmaker/internal/errors"
	"github.com/toyz/svcmaker/internal/generator"
	"github.com/toyz/svcmaker/internal/models"
	"github.com/toyz/svcmaker/internal/patcher"
	"github.com/toyz/svcmaker/internal/utils"
	"github.com/toyz/svcmaker/internal/utils/fileops"
)

// MakeOptions are the per-command flags of the make commands
type MakeOptions struct {
	Model     string
	Interface bool
	Bind      bool
	Singleton bool
}

// Maker coordinates generating, writing and registering artifacts
type Maker struct {
	files       *fileops.FileOps
	generator   *generator.Generator
	registrar   *patcher.Registrar
	diagnostics *utils.DiagnosticSystem
}

// NewMaker creates a Maker for the project at root
func NewMaker(root string, cfg *config.Config, diagnostics *utils.DiagnosticSystem) *Maker {
	files := fileops.NewFileOps(root)
	layout := generator.Layout{
		AppPath:         cfg.AppPath,
		RootNamespace:   cfg.RootNamespace,
		ModelsNamespace: cfg.ModelsNamespace,
	}
	providerPatcher := patcher.NewProviderPatcher(patcher.Options{
		IndentUnit:           cfg.IndentUnit,
		SkipDuplicateBinding: cfg.DedupeBindings,
	})

	return &Maker{
		files:       files,
		generator:   generator.NewGenerator(layout, files),
		registrar:   patcher.NewRegistrar(files, providerPatcher, cfg.ProviderPath, cfg.RegisterFunction),
		diagnostics: diagnostics,
	}
}

// Make generates the artifact of kind named name, its interface when asked
// for, and registers the binding when opts.Bind or opts.Singleton is set.
// Files written before a failing binding step are kept.
func (m *Maker) Make(ctx context.Context, kind models.Kind, name string, opts MakeOptions) error {
	withInterface := opts.Interface && (kind == models.KindRepository || kind == models.KindService)

	artifact, err := m.generator.Generate(kind, name, generator.Options{
		Model:         opts.Model,
		WithInterface: withInterface,
	})
	if err != nil {
		return err
	}

	if withInterface {
		if err := m.makeInterface(generator.InterfaceName(kind, name), kind == models.KindRepository); err != nil {
			return err
		}
	}

	if err := m.write(artifact, name); err != nil {
		return err
	}

	if !opts.Bind && !opts.Singleton {
		return nil
	}
	return m.register(ctx, artifact, models.ModeFor(opts.Singleton))
}

// makeInterface creates the interface a class implements. An interface that
// already exists is kept and reused.
func (m *Maker) makeInterface(name string, repositoryContract bool) error {
	artifact, err := m.generator.Generate(models.KindInterface, name, generator.Options{
		RepositoryContract: repositoryContract,
	})
	if errors.IsCode(err, errors.AlreadyExistsErrorCode) {
		m.diagnostics.Warn("Interface already exists, reusing it: %s", name+models.KindInterface.Suffix())
		return nil
	}
	if err != nil {
		return err
	}
	return m.write(artifact, name)
}

func (m *Maker) write(artifact *models.Artifact, name string) error {
	if err := m.files.CreateFile(artifact.TargetPath, artifact.Kind.String(), artifact.Content); err != nil {
		return err
	}
	m.diagnostics.Success("%s created successfully: %s%s", artifact.Kind, name, artifact.Kind.Suffix())
	m.diagnostics.Verbose("Wrote %s (%s)", artifact.TargetPath, artifact.FQN())
	return nil
}

func (m *Maker) register(ctx context.Context, artifact *models.Artifact, mode models.Mode) error {
	spec := generator.BindingFor(artifact, mode)
	provider := strings.TrimSuffix(filepath.Base(m.registrar.Path()), ".php")

	m.diagnostics.Debug("Registering %s in %s", spec.Describe(), m.registrar.Path())
	result, err := m.registrar.Register(ctx, spec)
	if err != nil {
		m.diagnostics.Warn("%s was created but its binding was not added to %s", artifact.TypeName, provider)
		return err
	}

	for _, fqn := range result.AddedImports {
		m.diagnostics.Verbose("Imported %s", fqn)
	}
	if result.BindingSkipped {
		m.diagnostics.Info("%s binding already present in %s: %s", artifact.Kind, provider, spec.Describe())
		return nil
	}

	m.diagnostics.Success("%s binding added to %s: %s as %s", artifact.Kind, provider, spec.Describe(), mode)
	return nil
}
