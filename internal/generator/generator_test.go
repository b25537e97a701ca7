package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/svcmaker/internal/errors"
	"github.com/toyz/svcmaker/internal/models"
)

type memStore map[string]bool

func (m memStore) Exists(path string) (bool, error) {
	return m[path], nil
}

var laravel = Layout{
	AppPath:         "app",
	RootNamespace:   "App",
	ModelsNamespace: `App\Models`,
}

func TestNewGenerator(t *testing.T) {
	generator := NewGenerator(laravel, memStore{})
	if generator == nil {
		t.Fatal("NewGenerator() returned nil")
	}
}

func TestGenerate_PathsAndNamespaces(t *testing.T) {
	tests := []struct {
		kind      models.Kind
		name      string
		path      string
		namespace string
		typeName  string
	}{
		{models.KindInterface, "Payable", "app/Interfaces/PayableInterface.php", `App\Interfaces`, "PayableInterface"},
		{models.KindRepository, "User", "app/Repositories/UserRepository.php", `App\Repositories`, "UserRepository"},
		{models.KindService, "Billing/Invoice", "app/Services/Billing/InvoiceService.php", `App\Services\Billing`, "InvoiceService"},
		{models.KindService, `Billing\Invoice`, "app/Services/Billing/InvoiceService.php", `App\Services\Billing`, "InvoiceService"},
		{models.KindTrait, "a/b/C", "app/Traits/a/b/C.php", `App\Traits\a\b`, "C"},
		{models.KindRepository, "a/b/C", "app/Repositories/a/b/CRepository.php", `App\Repositories\a\b`, "CRepository"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+" "+tt.name, func(t *testing.T) {
			artifact, err := NewGenerator(laravel, memStore{}).Generate(tt.kind, tt.name, Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if artifact.TargetPath != tt.path {
				t.Errorf("expected path %s, got %s", tt.path, artifact.TargetPath)
			}
			if artifact.Namespace != tt.namespace {
				t.Errorf("expected namespace %s, got %s", tt.namespace, artifact.Namespace)
			}
			if artifact.TypeName != tt.typeName {
				t.Errorf("expected type name %s, got %s", tt.typeName, artifact.TypeName)
			}
			if !strings.Contains(artifact.Content, "namespace "+tt.namespace+";") {
				t.Errorf("content does not declare namespace %s:\n%s", tt.namespace, artifact.Content)
			}
		})
	}
}

func TestGenerate_AlreadyExists(t *testing.T) {
	store := memStore{"app/Services/FooService.php": true}

	_, err := NewGenerator(laravel, store).Generate(models.KindService, "Foo", Options{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.AlreadyExistsErrorCode))
	assert.Equal(t, "app/Services/FooService.php: Service already exists", err.Error())
}

func TestGenerate_InvalidNames(t *testing.T) {
	for _, name := range []string{"", "a//b", "Billing/", "9Lives", "Foo-Bar"} {
		t.Run(name, func(t *testing.T) {
			_, err := NewGenerator(laravel, memStore{}).Generate(models.KindService, name, Options{})
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ValidationErrorCode))
		})
	}
}

func TestGenerate_ServiceWithoutModel(t *testing.T) {
	artifact, err := NewGenerator(laravel, memStore{}).Generate(models.KindService, "Foo", Options{})
	require.NoError(t, err)

	expected := `<?php

namespace App\Services;

class FooService
{
    /**
     * Create a new service instance.
     */
    public function __construct()
    {
        //
    }
}
`
	assert.Equal(t, expected, artifact.Content)
	assert.Empty(t, artifact.ModelFQN)
	assert.Empty(t, artifact.InterfaceFQN)
}

func TestGenerate_ServiceWithModelAndInterface(t *testing.T) {
	artifact, err := NewGenerator(laravel, memStore{}).Generate(models.KindService, "Billing/Invoice", Options{
		Model:         "Invoice",
		WithInterface: true,
	})
	require.NoError(t, err)

	assert.Equal(t, `App\Interfaces\Billing\InvoiceServiceInterface`, artifact.InterfaceFQN)
	assert.Equal(t, `App\Models\Invoice`, artifact.ModelFQN)
	assert.Contains(t, artifact.Content, "namespace App\\Services\\Billing;\n\n"+
		"use App\\Interfaces\\Billing\\InvoiceServiceInterface;\n"+
		"use App\\Models\\Invoice;\n\n"+
		"class InvoiceService implements InvoiceServiceInterface\n")
	assert.Contains(t, artifact.Content, "public function __construct(Invoice $model)")
}

func TestGenerate_RepositoryDefaultsModelToBaseName(t *testing.T) {
	artifact, err := NewGenerator(laravel, memStore{}).Generate(models.KindRepository, "Admin/User", Options{})
	require.NoError(t, err)

	assert.Equal(t, `App\Models\User`, artifact.ModelFQN)
	assert.Contains(t, artifact.Content, "use App\\Models\\User;")
	assert.Contains(t, artifact.Content, "class UserRepository\n{")
	assert.Contains(t, artifact.Content, `@return \App\Models\User|null`)
	for _, method := range []string{"all()", "find($id)", "create(array $data)", "update(array $data, $id)", "delete($id)"} {
		assert.Contains(t, artifact.Content, "public function "+method)
	}
}

func TestGenerate_ModelNames(t *testing.T) {
	tests := []struct {
		model    string
		expected string
	}{
		{"Post", `App\Models\Post`},
		{"Blog/Post", `App\Models\Blog\Post`},
		{`\Domain\Blog\Post`, `Domain\Blog\Post`},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			artifact, err := NewGenerator(laravel, memStore{}).Generate(models.KindRepository, "Post", Options{Model: tt.model})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, artifact.ModelFQN)
		})
	}

	_, err := NewGenerator(laravel, memStore{}).Generate(models.KindRepository, "Post", Options{Model: "Bad Name"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ValidationErrorCode))
}

func TestGenerate_RepositoryContractInterface(t *testing.T) {
	g := NewGenerator(laravel, memStore{})

	contract, err := g.Generate(models.KindInterface, InterfaceName(models.KindRepository, "User"), Options{RepositoryContract: true})
	require.NoError(t, err)
	assert.Equal(t, "app/Interfaces/UserRepositoryInterface.php", contract.TargetPath)
	assert.Contains(t, contract.Content, "public function update(array $data, $id);")

	plain, err := g.Generate(models.KindInterface, "Payable", Options{})
	require.NoError(t, err)
	assert.NotContains(t, plain.Content, "public function")

	repository, err := g.Generate(models.KindRepository, "User", Options{WithInterface: true})
	require.NoError(t, err)
	assert.Equal(t, contract.FQN(), repository.InterfaceFQN, "the class implements the generated interface")
}

func TestGenerate_CustomLayout(t *testing.T) {
	layout := Layout{AppPath: "src", RootNamespace: `Acme\Shop`, ModelsNamespace: `Acme\Shop\Entities`}

	artifact, err := NewGenerator(layout, memStore{}).Generate(models.KindRepository, "Order", Options{})
	require.NoError(t, err)

	assert.Equal(t, "src/Repositories/OrderRepository.php", artifact.TargetPath)
	assert.Equal(t, `Acme\Shop\Repositories`, artifact.Namespace)
	assert.Equal(t, `Acme\Shop\Entities\Order`, artifact.ModelFQN)
}

func TestBindingFor(t *testing.T) {
	g := NewGenerator(laravel, memStore{})

	repository, err := g.Generate(models.KindRepository, "User", Options{})
	require.NoError(t, err)
	assert.Equal(t, models.BindingSpec{
		Implementation: `App\Repositories\UserRepository`,
		Dependency:     `App\Models\User`,
		Mode:           models.ModeSingleton,
	}, BindingFor(repository, models.ModeSingleton))

	withInterface, err := g.Generate(models.KindRepository, "User", Options{WithInterface: true})
	require.NoError(t, err)
	assert.Equal(t, models.BindingSpec{
		Implementation: `App\Repositories\UserRepository`,
		Interface:      `App\Interfaces\UserRepositoryInterface`,
	}, BindingFor(withInterface, models.ModeTransient))

	service, err := g.Generate(models.KindService, "Foo", Options{Model: "User"})
	require.NoError(t, err)
	assert.Equal(t, models.BindingSpec{Implementation: `App\Services\FooService`}, BindingFor(service, models.ModeTransient))
}
