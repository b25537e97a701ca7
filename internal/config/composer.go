package config

import (
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/svcmaker/internal/errors"
)

// DefaultRootNamespace is used when composer.json maps no namespace to the app directory
const DefaultRootNamespace = "App"

// ComposerResolver reads project information from composer.json
type ComposerResolver struct {
	root string
}

// NewComposerResolver creates a resolver for the project at root
func NewComposerResolver(root string) *ComposerResolver {
	return &ComposerResolver{root: root}
}

type composerManifest struct {
	Autoload struct {
		PSR4 map[string]json.RawMessage `json:"psr-4"`
	} `json:"autoload"`
}

// RootNamespace returns the PSR-4 namespace composer.json maps to appPath.
// A missing composer.json or mapping yields DefaultRootNamespace.
func (r *ComposerResolver) RootNamespace(appPath string) (string, error) {
	path := filepath.Join(r.root, "composer.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return DefaultRootNamespace, nil
		}
		return "", errors.WrapConfigurationError("composer.json", "read", err)
	}

	var manifest composerManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", errors.WrapConfigurationError("composer.json", "parse", err)
	}

	want := cleanDir(appPath)
	prefixes := make([]string, 0, len(manifest.Autoload.PSR4))
	for prefix := range manifest.Autoload.PSR4 {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	for _, prefix := range prefixes {
		for _, dir := range psr4Dirs(manifest.Autoload.PSR4[prefix]) {
			if cleanDir(dir) == want {
				return strings.TrimSuffix(prefix, `\`), nil
			}
		}
	}

	return DefaultRootNamespace, nil
}

// psr4Dirs decodes a PSR-4 target, which is either a path or a list of paths
func psr4Dirs(raw json.RawMessage) []string {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}
	return nil
}

func cleanDir(dir string) string {
	return filepath.ToSlash(filepath.Clean(strings.TrimSpace(dir)))
}

// FindProjectRoot looks for composer.json in start and its parent directories
// and returns the first directory holding one. Without a match start itself
// is returned.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.WrapConfigurationError("project root", "resolve", err)
	}

	for current := dir; ; {
		if _, err := os.Stat(filepath.Join(current, "composer.json")); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}
