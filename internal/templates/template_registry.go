package templates

import "sort"

// Template names known to the registry
const (
	InterfaceTemplate           = "interface"
	RepositoryInterfaceTemplate = "repository-interface"
	RepositoryTemplate          = "repository"
	ServiceTemplate             = "service"
	TraitTemplate               = "trait"
)

// TemplateRegistry provides a centralized way to access all stub templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerInterfaceTemplates()
	registry.registerClassTemplates()
	registry.registerTraitTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// Names returns the registered template names in sorted order
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// registerInterfaceTemplates registers the interface stubs
func (tr *TemplateRegistry) registerInterfaceTemplates() {
	tr.templates[InterfaceTemplate] = `<?php

namespace {{.Namespace}};
{{useBlock .Uses}}
interface {{.ClassName}}
{
    //
}
`

	tr.templates[RepositoryInterfaceTemplate] = `<?php

namespace {{.Namespace}};
{{useBlock .Uses}}
interface {{.ClassName}}
{
    /**
     * Get all resources.
     *
     * @return \Illuminate\Database\Eloquent\Collection
     */
    public function all();

    /**
     * Find resource by id.
     *
     * @param int $id
     * @return mixed
     */
    public function find($id);

    /**
     * Create new resource.
     *
     * @param array $data
     * @return mixed
     */
    public function create(array $data);

    /**
     * Update resource.
     *
     * @param array $data
     * @param int $id
     * @return bool
     */
    public function update(array $data, $id);

    /**
     * Delete resource.
     *
     * @param int $id
     * @return bool
     */
    public function delete($id);
}
`
}

// registerClassTemplates registers the repository and service stubs
func (tr *TemplateRegistry) registerClassTemplates() {
	tr.templates[RepositoryTemplate] = `<?php

namespace {{.Namespace}};
{{useBlock .Uses}}
class {{.ClassName}}{{implements .Implements}}
{
    /**
     * @var {{.Model}}
     */
    protected $model;

    /**
     * Create a new repository instance.
     */
    public function __construct({{.Model}} $model)
    {
        $this->model = $model;
    }

    /**
     * Get all resources.
     *
     * @return \Illuminate\Database\Eloquent\Collection
     */
    public function all()
    {
        return $this->model->all();
    }

    /**
     * Find resource by id.
     *
     * @param int $id
     * @return \{{.ModelFQN}}|null
     */
    public function find($id)
    {
        return $this->model->find($id);
    }

    /**
     * Create new resource.
     *
     * @param array $data
     * @return \{{.ModelFQN}}
     */
    public function create(array $data)
    {
        return $this->model->create($data);
    }

    /**
     * Update resource.
     *
     * @param array $data
     * @param int $id
     * @return bool
     */
    public function update(array $data, $id)
    {
        $record = $this->find($id);
        return $record->update($data);
    }

    /**
     * Delete resource.
     *
     * @param int $id
     * @return bool
     */
    public function delete($id)
    {
        return $this->model->destroy($id);
    }
}
`

	tr.templates[ServiceTemplate] = `<?php

namespace {{.Namespace}};
{{useBlock .Uses}}
class {{.ClassName}}{{implements .Implements}}
{
{{- if .Model}}
    /**
     * @var {{.Model}}
     */
    protected $model;

    /**
     * Create a new service instance.
     */
    public function __construct({{.Model}} $model)
    {
        $this->model = $model;
    }
{{- else}}
    /**
     * Create a new service instance.
     */
    public function __construct()
    {
        //
    }
{{- end}}
}
`
}

// registerTraitTemplates registers the trait stub
func (tr *TemplateRegistry) registerTraitTemplates() {
	tr.templates[TraitTemplate] = `<?php

namespace {{.Namespace}};
{{useBlock .Uses}}
trait {{.ClassName}}
{
    //
}
`
}

// DefaultTemplateRegistry is the global template registry instance
var DefaultTemplateRegistry = NewTemplateRegistry()
