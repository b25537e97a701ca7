package patcher

import (
	"context"
	"path/filepath"

	"github.com/toyz/svcmaker/internal/errors"
	"github.com/toyz/svcmaker/internal/models"
)

// ProviderStore is the file access the registrar needs
type ProviderStore interface {
	Exists(path string) (bool, error)
	ReadFile(path string) (string, error)
	ReplaceFile(path, content string) error
	Lock(ctx context.Context, path string) (func(), error)
}

// Registrar applies bindings to a provider file on disk
type Registrar struct {
	store    ProviderStore
	patcher  *ProviderPatcher
	path     string
	function string
}

// NewRegistrar creates a Registrar for the provider at path
func NewRegistrar(store ProviderStore, patcher *ProviderPatcher, path, function string) *Registrar {
	if function == "" {
		function = DefaultFunction
	}
	return &Registrar{store: store, patcher: patcher, path: path, function: function}
}

// Path returns the provider path the registrar patches
func (r *Registrar) Path() string {
	return r.path
}

// Register patches the provider with spec. The read-patch-write sequence runs
// under the provider lock so concurrent invocations cannot lose each other's
// edits. The file is only rewritten when its content changes; on any error
// it is left untouched.
func (r *Registrar) Register(ctx context.Context, spec models.BindingSpec) (*Result, error) {
	exists, err := r.store.Exists(r.path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.Newf(errors.IOFailureErrorCode, "%s not found", filepath.Base(r.path)).
			WithLocation(errors.SourceLocation{File: r.path}).
			WithSuggestions(
				"Set provider_path in svcmaker.yaml if the provider lives elsewhere",
				"Pass --provider to point at the provider for this run",
			)
	}

	unlock, err := r.store.Lock(ctx, r.path)
	if err != nil {
		return nil, err
	}
	defer unlock()

	document, err := r.store.ReadFile(r.path)
	if err != nil {
		return nil, err
	}

	result, err := r.patcher.Patch(document, spec, r.function)
	if err != nil {
		if base, ok := err.(*errors.BaseError); ok && base.Loc.File == "" {
			base.Loc.File = r.path
		}
		return nil, err
	}

	if result.Changed() {
		if err := r.store.ReplaceFile(r.path, result.Content); err != nil {
			return nil, err
		}
	}

	return result, nil
}
