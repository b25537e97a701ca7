package cli

// Config holds the global command-line options
type Config struct {
	// Root is the project directory; empty means search upwards from the
	// working directory for composer.json
	Root string

	// ConfigPath is an explicit configuration file, relative to Root
	ConfigPath string

	// ProviderPath and RegisterFunction override the configured provider target
	ProviderPath     string
	RegisterFunction string

	// Verbose enables detailed logging and error reporting
	Verbose bool

	// Quiet only shows errors
	Quiet bool
}
