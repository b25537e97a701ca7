package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toyz/svcmaker/internal/config"
	"github.com/toyz/svcmaker/internal/models"
	"github.com/toyz/svcmaker/internal/utils"
)

// app carries the state shared by the root command and its subcommands
type app struct {
	config      Config
	stdout      io.Writer
	stderr      io.Writer
	diagnostics *utils.DiagnosticSystem
	maker       *Maker
}

// NewRootCommand builds the svcmaker command tree writing to stdout and stderr
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	return newApp(stdout, stderr).rootCommand()
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "svcmaker",
		Short: "Generate Laravel interfaces, repositories, services and traits",
		Long: `svcmaker generates Laravel boilerplate classes and registers their
container bindings in the application's service provider.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.config.Root, "root", "", "Project directory (defaults to the nearest directory with composer.json)")
	flags.StringVar(&a.config.ConfigPath, "config", "", "Configuration file (defaults to svcmaker.yaml in the project root)")
	flags.StringVar(&a.config.ProviderPath, "provider", "", "Service provider to register bindings in")
	flags.StringVar(&a.config.RegisterFunction, "register-fn", "", "Provider method bindings are added to")
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", false, "Enable verbose output and detailed error reporting")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", false, "Only show errors")

	for _, kind := range models.AllKinds {
		root.AddCommand(a.makeCommand(kind))
	}

	return root
}

// makeCommand builds make:<kind>. Repositories and services get the model,
// interface and binding flags.
func (a *app) makeCommand(kind models.Kind) *cobra.Command {
	var opts MakeOptions
	name := strings.ToLower(kind.String())
	bindable := kind == models.KindRepository || kind == models.KindService

	short := "Create a new " + name
	if bindable {
		short += " class"
	}

	cmd := &cobra.Command{
		Use:   "make:" + name + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.maker.Make(cmd.Context(), kind, args[0], opts)
		},
	}

	if bindable {
		modelHelp := "Model the service is constructed with"
		if kind == models.KindRepository {
			modelHelp = "Model the repository manages (defaults to the repository name)"
		}
		cmd.Flags().StringVarP(&opts.Model, "model", "m", "", modelHelp)
		cmd.Flags().BoolVarP(&opts.Interface, "interface", "i", false, "Also create and implement an interface")
		cmd.Flags().BoolVarP(&opts.Bind, "bind", "b", false, "Register a binding in the service provider")
		cmd.Flags().BoolVarP(&opts.Singleton, "singleton", "s", false, "Register the binding as a singleton (implies --bind)")
	}

	return cmd
}

// setup resolves the project and its configuration before any subcommand runs
func (a *app) setup(cmd *cobra.Command, args []string) error {
	switch {
	case a.config.Quiet:
		a.diagnostics = utils.NewQuietDiagnostics()
	case a.config.Verbose:
		a.diagnostics = utils.NewVerboseDiagnostics()
	default:
		a.diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	a.diagnostics.SetOutput(a.stdout, a.stderr)

	root := a.config.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		if root, err = config.FindProjectRoot(wd); err != nil {
			return err
		}
	}

	cfg, err := config.Load(root, a.config.ConfigPath)
	if err != nil {
		return err
	}
	if a.config.ProviderPath != "" {
		cfg.ProviderPath = a.config.ProviderPath
	}
	if a.config.RegisterFunction != "" {
		cfg.RegisterFunction = a.config.RegisterFunction
	}
	if err := cfg.Resolve(root); err != nil {
		return err
	}

	if cfg.Source != "" {
		a.diagnostics.Verbose("Using configuration %s", cfg.Source)
	}
	a.diagnostics.Verbose("Project root %s, namespace %s", root, cfg.RootNamespace)

	a.maker = NewMaker(root, cfg, a.diagnostics)
	return nil
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		colors := false
		if a.diagnostics != nil {
			colors = a.diagnostics.Colors()
		}
		NewDiagnosticReporter(stderr, a.config.Verbose, colors).ReportError(err)
		return 1
	}
	return 0
}
