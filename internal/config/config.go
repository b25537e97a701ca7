package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/toyz/svcmaker/internal/errors"
	"github.com/toyz/svcmaker/internal/models"
)

// FileName is the project configuration file looked up in the project root
const FileName = "svcmaker.yaml"

// EnvPrefix prefixes every environment override
const EnvPrefix = "SVCMAKER_"

// Config holds the project layout and patching preferences
type Config struct {
	// AppPath is the application source directory, relative to the project root
	AppPath string `yaml:"app_path" validate:"required"`
	// RootNamespace is the namespace AppPath maps to. Empty means resolve
	// it from composer.json.
	RootNamespace string `yaml:"root_namespace" validate:"phpnamespace"`
	// ModelsNamespace qualifies bare model names. Empty means <RootNamespace>\Models.
	ModelsNamespace string `yaml:"models_namespace" validate:"phpnamespace"`

	ProviderPath     string `yaml:"provider_path" validate:"required"`
	RegisterFunction string `yaml:"register_function" validate:"required"`
	IndentUnit       string `yaml:"indent_unit" validate:"indent"`
	DedupeBindings   bool   `yaml:"dedupe_bindings"`

	// Source is the configuration file that was loaded, if any
	Source string `yaml:"-"`
}

// Default returns the layout of a stock Laravel application
func Default() *Config {
	return &Config{
		AppPath:          "app",
		ProviderPath:     "app/Providers/AppServiceProvider.php",
		RegisterFunction: "register",
		IndentUnit:       "    ",
		DedupeBindings:   true,
	}
}

// Load builds the configuration for the project at root. Values are layered:
// defaults, then the config file, then SVCMAKER_* variables from the
// project's .env, then the process environment. An explicit path must exist;
// the default svcmaker.yaml is optional.
func Load(root, path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, FileName)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapConfigurationError(path, "parse", err)
		}
		cfg.Source = path
	case explicit || !stderrors.Is(err, fs.ErrNotExist):
		return nil, errors.WrapConfigurationError(path, "read", err)
	}

	dotenv, err := godotenv.Read(filepath.Join(root, ".env"))
	if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.WrapConfigurationError(".env", "read", err)
	}
	if err := cfg.applyEnv(dotenv); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(environ()); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides fields from SVCMAKER_* entries of env
func (c *Config) applyEnv(env map[string]string) error {
	fields := map[string]*string{
		"APP_PATH":          &c.AppPath,
		"ROOT_NAMESPACE":    &c.RootNamespace,
		"MODELS_NAMESPACE":  &c.ModelsNamespace,
		"PROVIDER_PATH":     &c.ProviderPath,
		"REGISTER_FUNCTION": &c.RegisterFunction,
		"INDENT_UNIT":       &c.IndentUnit,
	}
	for key, field := range fields {
		if value, ok := env[EnvPrefix+key]; ok && value != "" {
			*field = value
		}
	}

	if value, ok := env[EnvPrefix+"DEDUPE_BINDINGS"]; ok && value != "" {
		dedupe, err := strconv.ParseBool(value)
		if err != nil {
			return errors.WrapConfigurationError(EnvPrefix+"DEDUPE_BINDINGS", "parse", err)
		}
		c.DedupeBindings = dedupe
	}

	return nil
}

// Resolve fills in the namespaces left empty: the root namespace from the
// project's composer.json, the models namespace below it
func (c *Config) Resolve(root string) error {
	if c.RootNamespace == "" {
		namespace, err := NewComposerResolver(root).RootNamespace(c.AppPath)
		if err != nil {
			return err
		}
		c.RootNamespace = namespace
	}
	c.RootNamespace = models.NormalizeFQN(strings.TrimSuffix(c.RootNamespace, models.NamespaceSeparator))

	if c.ModelsNamespace == "" {
		c.ModelsNamespace = models.JoinNamespace(c.RootNamespace, "Models")
	}
	c.ModelsNamespace = models.NormalizeFQN(strings.TrimSuffix(c.ModelsNamespace, models.NamespaceSeparator))

	return c.Validate()
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.WrapConfigurationError(FileName, "validate", err)
	}

	fe := fieldErrs[0]
	actual, _ := fe.Value().(string)
	validationErr := errors.NewValidationError(fe.Field(), expectations[fe.Tag()], actual)
	if fe.Tag() == "phpnamespace" {
		if cause := models.ValidateFQN(actual); cause != nil {
			validationErr.WithSuggestion(cause.Error())
		}
	}
	return validationErr
}

// environ returns the process environment as a map
func environ() map[string]string {
	env := make(map[string]string)
	for _, entry := range os.Environ() {
		if key, value, ok := strings.Cut(entry, "="); ok && strings.HasPrefix(key, EnvPrefix) {
			env[key] = value
		}
	}
	return env
}
