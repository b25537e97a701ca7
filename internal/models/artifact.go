package models

// Kind represents the type of artifact the generator produces
type Kind int

const (
	KindInterface Kind = iota
	KindRepository
	KindService
	KindTrait
)

// AllKinds lists every artifact kind in declaration order
var AllKinds = []Kind{KindInterface, KindRepository, KindService, KindTrait}

// String returns the display name of the kind
func (k Kind) String() string {
	switch k {
	case KindInterface:
		return "Interface"
	case KindRepository:
		return "Repository"
	case KindService:
		return "Service"
	case KindTrait:
		return "Trait"
	default:
		return "Unknown"
	}
}

// Directory returns the base directory for the kind under the application root
func (k Kind) Directory() string {
	switch k {
	case KindInterface:
		return "Interfaces"
	case KindRepository:
		return "Repositories"
	case KindService:
		return "Services"
	case KindTrait:
		return "Traits"
	default:
		return ""
	}
}

// Suffix returns the class name suffix for the kind. Traits have none.
func (k Kind) Suffix() string {
	if k == KindTrait {
		return ""
	}
	return k.String()
}

// Artifact is a generated source file that has not been persisted yet
type Artifact struct {
	TargetPath string // path relative to the project root
	Namespace  string // PHP namespace of the generated type
	TypeName   string // class, interface or trait name including its suffix
	Kind       Kind
	Content    string

	InterfaceFQN string // interface the generated class implements, if any
	ModelFQN     string // model the generated class is constructed with, if any
}

// FQN returns the fully-qualified name of the generated type
func (a *Artifact) FQN() string {
	return JoinNamespace(a.Namespace, a.TypeName)
}
