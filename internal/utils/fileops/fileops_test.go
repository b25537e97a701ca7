package fileops

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/svcmaker/internal/errors"
)

func TestFileOps_CreateFile(t *testing.T) {
	root := t.TempDir()
	ops := NewFileOps(root)

	err := ops.CreateFile("app/Services/Billing/InvoiceService.php", "Service", "<?php\n")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(root, "app", "Services", "Billing", "InvoiceService.php"))
	require.NoError(t, err)
	assert.Equal(t, "<?php\n", string(content))

	exists, err := ops.Exists("app/Services/Billing/InvoiceService.php")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFileOps_CreateFileNeverOverwrites(t *testing.T) {
	root := t.TempDir()
	ops := NewFileOps(root)

	require.NoError(t, ops.CreateFile("app/Traits/Auditable.php", "Trait", "original"))

	err := ops.CreateFile("app/Traits/Auditable.php", "Trait", "replacement")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.AlreadyExistsErrorCode))
	assert.Contains(t, err.Error(), "Trait already exists")

	content, err := ops.ReadFile("app/Traits/Auditable.php")
	require.NoError(t, err)
	assert.Equal(t, "original", content)
}

func TestFileOps_CreateFileIOFailure(t *testing.T) {
	root := t.TempDir()
	ops := NewFileOps(root)

	// a regular file where a directory is needed
	require.NoError(t, os.WriteFile(filepath.Join(root, "app"), []byte("x"), 0644))

	err := ops.CreateFile("app/Services/UserService.php", "Service", "<?php\n")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.IOFailureErrorCode))
}

func TestFileOps_ReadMissingFile(t *testing.T) {
	ops := NewFileOps(t.TempDir())

	_, err := ops.ReadFile("app/Providers/AppServiceProvider.php")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.IOFailureErrorCode))

	exists, err := ops.Exists("app/Providers/AppServiceProvider.php")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileOps_ReplaceFile(t *testing.T) {
	root := t.TempDir()
	ops := NewFileOps(root)
	target := filepath.Join(root, "provider.php")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0600))

	require.NoError(t, ops.ReplaceFile("provider.php", "new"))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "permissions are preserved")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestFileOps_RejectsPathsOutsideRoot(t *testing.T) {
	ops := NewFileOps(t.TempDir())

	tests := []string{
		"../outside.php",
		"app/../../outside.php",
		"",
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			err := ops.CreateFile(path, "Service", "x")
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ValidationErrorCode))
		})
	}
}

func TestPathValidator_Resolve(t *testing.T) {
	root := t.TempDir()
	pv := NewPathValidator(root)

	got, err := pv.Resolve("app/Models/User.php")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "app", "Models", "User.php"), got)

	got, err = pv.Resolve(filepath.Join(root, "composer.json"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "composer.json"), got)

	_, err = pv.Resolve(filepath.Dir(root))
	assert.Error(t, err)
}

func TestFileOps_LockIsExclusive(t *testing.T) {
	root := t.TempDir()
	ops := NewFileOps(root)

	unlock, err := ops.Lock(context.Background(), "provider.php")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	_, err = ops.Lock(ctx, "provider.php")
	require.Error(t, err, "a second holder must wait while the lock is held")
	assert.True(t, errors.IsCode(err, errors.IOFailureErrorCode))

	unlock()

	unlock, err = ops.Lock(context.Background(), "provider.php")
	require.NoError(t, err)
	unlock()
}
