package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		expectedDir  string
		expectedNS   string
		expectedBase string
		expectError  bool
	}{
		{name: "plain", raw: "User", expectedBase: "User"},
		{name: "slashes", raw: "a/b/C", expectedDir: "a/b", expectedNS: `a\b`, expectedBase: "C"},
		{name: "backslashes", raw: `Admin\Billing\Invoice`, expectedDir: "Admin/Billing", expectedNS: `Admin\Billing`, expectedBase: "Invoice"},
		{name: "mixed", raw: `Admin/Billing\Invoice`, expectedDir: "Admin/Billing", expectedNS: `Admin\Billing`, expectedBase: "Invoice"},
		{name: "empty", raw: "", expectError: true},
		{name: "empty segment", raw: "a//C", expectError: true},
		{name: "trailing separator", raw: "a/", expectError: true},
		{name: "invalid identifier", raw: "1Foo", expectError: true},
		{name: "dash", raw: "foo-bar", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseName(tt.raw)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedDir, q.Dir())
			assert.Equal(t, tt.expectedNS, q.NamespaceSuffix())
			assert.Equal(t, tt.expectedBase, q.Base)
		})
	}
}

func TestFQNHelpers(t *testing.T) {
	assert.Equal(t, "FooService", ShortName(`\App\Services\FooService`))
	assert.Equal(t, "Foo", ShortName("Foo"))
	assert.Equal(t, `App\Services`, NamespaceOf(`App\Services\FooService`))
	assert.Equal(t, "", NamespaceOf("Foo"))
	assert.Equal(t, `App\Services\Admin`, JoinNamespace("App", `\Services\`, "", "Admin"))

	assert.NoError(t, ValidateFQN(`\App\Models\User`))
	assert.Error(t, ValidateFQN(`App\\User`))
	assert.Error(t, ValidateFQN(""))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "Repositories", KindRepository.Directory())
	assert.Equal(t, "Repository", KindRepository.Suffix())
	assert.Equal(t, "", KindTrait.Suffix())
	assert.Equal(t, "Traits", KindTrait.Directory())
	assert.Equal(t, "Service", KindService.String())
	assert.Len(t, AllKinds, 4)
}

func TestBindingSpec(t *testing.T) {
	spec := BindingSpec{
		Implementation: `App\Services\FooService`,
		Interface:      `App\Interfaces\FooServiceInterface`,
		Mode:           ModeFor(true),
	}
	require.NoError(t, spec.Validate())
	assert.True(t, spec.HasInterface())
	assert.Equal(t, "FooServiceInterface => FooService", spec.Describe())
	assert.Equal(t, "singleton", spec.Mode.Method())
	assert.Equal(t, "bind", ModeTransient.Method())
	assert.Equal(t, "transient", ModeTransient.String())

	bad := BindingSpec{Implementation: `App\Bad Name`}
	assert.Error(t, bad.Validate())
}

func TestArtifact_FQN(t *testing.T) {
	artifact := &Artifact{Namespace: `App\Services\Billing`, TypeName: "InvoiceService"}
	assert.Equal(t, `App\Services\Billing\InvoiceService`, artifact.FQN())
}
