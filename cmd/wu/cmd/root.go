package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wu-lang/wu/internal/cli"
	"github.com/wu-lang/wu/internal/diagnostic"
)

// errReported is returned after diagnostics have already been printed.
var errReported = errors.New("errors reported")

// options holds the global flags.
type options struct {
	cfgFile string
	verbose bool
	debug   bool
	color   string
	paths   []string
}

// session is the state shared by all subcommands of one invocation.
type session struct {
	cfg      *cli.Config
	logger   *cli.Logger
	renderer *diagnostic.Renderer
}

// NewRootCmd builds the wu command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	s := &session{}

	root := &cobra.Command{
		Use:   "wu",
		Short: "wu language front end",
		Long: `wu tokenizes, parses and type checks wu source files.

Configuration is read from --config, or from ./wu.toml when present.
TOML, YAML and JSON config files are supported.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default: ./"+cli.DefaultConfigFile+")")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&opts.debug, "debug", false, "debug output")
	flags.StringVar(&opts.color, "color", "", "color diagnostics: auto, always or never")
	flags.StringSliceVarP(&opts.paths, "module-path", "I", nil, "module manifest search path (repeatable)")

	root.AddCommand(
		newTokensCmd(s),
		newParseCmd(s),
		newCheckCmd(s),
		newWatchCmd(s),
		newVersionCmd(),
	)
	return root
}

// setup loads the config and applies flags that were set explicitly.
func (s *session) setup(cmd *cobra.Command, opts *options) error {
	path := opts.cfgFile
	if path == "" {
		if _, err := os.Stat(cli.DefaultConfigFile); err == nil {
			path = cli.DefaultConfigFile
		}
	}

	cfg, err := cli.LoadConfig(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if flags.Changed("color") {
		cfg.Color = opts.color
	}
	if flags.Changed("module-path") {
		cfg.ModulePaths = append(opts.paths, cfg.ModulePaths...)
	}

	mode, err := diagnostic.ParseColorMode(cfg.Color)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.logger = cli.NewLoggerFromConfig(cmd.ErrOrStderr(), cfg)
	s.renderer = diagnostic.NewRenderer(cmd.ErrOrStderr(), mode)

	if path != "" {
		s.logger.Debug("config loaded", "path", path)
	}
	return nil
}

// Execute runs the wu command.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
