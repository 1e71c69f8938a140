// Package cli implements the unitto command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/unitto/internal/catalog"
	"github.com/mesh-intelligence/unitto/internal/format"
	"github.com/mesh-intelligence/unitto/internal/logging"
	"github.com/mesh-intelligence/unitto/internal/paths"
	"github.com/mesh-intelligence/unitto/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// cmdError carries the exit code of a failed command.
type cmdError struct {
	code int
	err  error
}

func (e *cmdError) Error() string { return e.err.Error() }
func (e *cmdError) Unwrap() error { return e.err }

func userError(err error) error { return &cmdError{code: exitUserError, err: err} }
func sysError(err error) error  { return &cmdError{code: exitSysError, err: err} }

// exitCode maps an error returned by a command to a process exit code.
// Errors not classified by a command are usage errors from cobra.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *cmdError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}

// app holds the state shared by all subcommands of one invocation.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool

	cfg       *viper.Viper
	prefs     types.Preferences
	log       zerolog.Logger
	catalog   *catalog.Catalog
	formatter *format.Formatter
}

// NewRootCmd creates the top-level "unitto" command with its global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{
		log:       zerolog.Nop(),
		catalog:   catalog.Default(),
		formatter: format.New(types.SeparatorSpaces),
	}

	root := &cobra.Command{
		Use:   "unitto",
		Short: "Convert units and evaluate expressions with exact decimals",
		Long: `unitto evaluates arithmetic expressions and converts the result between
units of length, mass, temperature, volume, area, time, speed, data, and
currency. Numbers are formatted with the configured digit separator.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output as JSON")

	root.AddCommand(
		a.newInitCmd(),
		a.newFormatCmd(),
		a.newEvalCmd(),
		a.newConvertCmd(),
		a.newUnitsCmd(),
		a.newFavoriteCmd(),
		a.newPairCmd(),
		a.newForgetCmd(),
		a.newRatesCmd(),
		a.newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:], os.Stderr)
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "unitto:", err)
	}
	return exitCode(err)
}

// setup loads the configuration and builds the logger and formatter.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	a.cfg, err = loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	a.prefs = preferencesFrom(a.cfg)
	if err := a.prefs.Validate(); err != nil {
		return userError(fmt.Errorf("config %s: %w", configDir, err))
	}

	a.log, err = logging.NewConsole(cmd.ErrOrStderr(), a.prefs.LogLevel)
	if err != nil {
		return userError(err)
	}
	a.log = logging.Component(a.log, "cli")
	a.formatter.SetSeparator(a.prefs.SeparatorSetting())

	a.log.Debug().
		Str("config_dir", configDir).
		Str("separator", a.prefs.Separator).
		Int("precision", a.prefs.Precision).
		Msg("configuration loaded")
	return nil
}
