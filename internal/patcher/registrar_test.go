package patcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/svcmaker/internal/errors"
	"github.com/toyz/svcmaker/internal/models"
	"github.com/toyz/svcmaker/internal/utils/fileops"
)

const providerPath = "app/Providers/AppServiceProvider.php"

func writeProvider(t *testing.T, root, content string) string {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(providerPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	return full
}

func TestRegistrar_Register(t *testing.T) {
	root := t.TempDir()
	full := writeProvider(t, root, stockProvider)
	registrar := NewRegistrar(fileops.NewFileOps(root), newPatcher(), providerPath, "")

	result, err := registrar.Register(context.Background(), models.BindingSpec{
		Implementation: `App\Repositories\UserRepository`,
		Interface:      `App\Interfaces\UserRepositoryInterface`,
		Mode:           models.ModeSingleton,
	})
	require.NoError(t, err)
	assert.True(t, result.Changed())

	content, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, result.Content, string(content))
	assert.Contains(t, string(content), `$this->app->singleton(UserRepositoryInterface::class, UserRepository::class);`)
}

func TestRegistrar_UnchangedProviderIsNotRewritten(t *testing.T) {
	root := t.TempDir()
	full := writeProvider(t, root, stockProvider)
	registrar := NewRegistrar(fileops.NewFileOps(root), newPatcher(), providerPath, "register")
	spec := models.BindingSpec{Implementation: `App\Services\FooService`}

	_, err := registrar.Register(context.Background(), spec)
	require.NoError(t, err)

	before, err := os.Stat(full)
	require.NoError(t, err)

	result, err := registrar.Register(context.Background(), spec)
	require.NoError(t, err)
	assert.False(t, result.Changed())

	after, err := os.Stat(full)
	require.NoError(t, err)
	assert.True(t, os.SameFile(before, after), "an unchanged provider keeps its inode")
}

func TestRegistrar_MissingProvider(t *testing.T) {
	registrar := NewRegistrar(fileops.NewFileOps(t.TempDir()), newPatcher(), providerPath, "register")

	_, err := registrar.Register(context.Background(), models.BindingSpec{Implementation: `App\Services\FooService`})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.IOFailureErrorCode))
	assert.Contains(t, err.Error(), "AppServiceProvider.php not found")

	var makerErr errors.MakerError
	require.ErrorAs(t, err, &makerErr)
	assert.Len(t, makerErr.Suggestions(), 2)
}

func TestRegistrar_FailedPatchLeavesFileUntouched(t *testing.T) {
	root := t.TempDir()
	document := "<?php\n\nnamespace App\\Providers;\n\nclass AppServiceProvider\n{\n}\n"
	full := writeProvider(t, root, document)
	registrar := NewRegistrar(fileops.NewFileOps(root), newPatcher(), providerPath, "register")

	_, err := registrar.Register(context.Background(), models.BindingSpec{Implementation: `App\Services\FooService`})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.RegionNotFoundErrorCode))
	assert.Contains(t, err.Error(), providerPath)

	content, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, document, string(content))
}

func TestRegistrar_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeProvider(t, root, stockProvider)
	registrar := NewRegistrar(fileops.NewFileOps(root), newPatcher(), providerPath, "register")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := registrar.Register(ctx, models.BindingSpec{Implementation: `App\Services\FooService`})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.IOFailureErrorCode))
}
