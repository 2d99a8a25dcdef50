package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"co2d/internal/config"
	"co2d/internal/logging"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	logFile    string
	storeKind  string
	storePath  string
	storeKeep  int
}

// buildRootCmd constructs the command tree.
func buildRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "co2d",
		Short:         "Vehicle CO2 emissions predictor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErr("%v", err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (.yaml|.yml|.json|.toml)")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	pf.StringVar(&g.logFormat, "log-format", "", "Log format: console|json")
	pf.StringVar(&g.logFile, "log-file", "", "Also write JSON logs to this file (rotated)")
	pf.StringVar(&g.storeKind, "store-kind", "", "Artifact store: file|bolt")
	pf.StringVar(&g.storePath, "store-path", "", "Artifact directory (file) or database (bolt)")
	pf.IntVar(&g.storeKeep, "keep", 0, "Artifact versions kept by a file store")

	root.AddCommand(
		newServeCmd(g),
		newFitCmd(g),
		newPredictCmd(),
		newLabelsCmd(),
		newStatusCmd(),
	)
	return root
}

// resolveConfig applies file, env and then any flag the user set.
func resolveConfig(cmd *cobra.Command, g *globalFlags) (config.Config, error) {
	cfg, err := config.Resolve(g.configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = g.logFormat
	}
	if flags.Changed("log-file") {
		cfg.LogFile = g.logFile
	}
	if flags.Changed("store-kind") {
		cfg.Store.Kind = g.storeKind
	}
	if flags.Changed("store-path") {
		cfg.Store.Path = g.storePath
	}
	if flags.Changed("keep") {
		cfg.Store.Keep = g.storeKeep
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) (zerolog.Logger, func(), error) {
	l, closer, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return l, func() {}, err
	}
	return l, func() { _ = closer.Close() }, nil
}

func usageErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// usageArgs turns a positional-argument validation failure into a usage error.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageErr("%v", err)
		}
		return nil
	}
}

// isUsage reports whether err should exit with status 2. Unknown
// subcommands of the root are reported by cobra as plain errors.
func isUsage(err error) bool {
	return errors.Is(err, errUsage) || strings.HasPrefix(err.Error(), "unknown command ")
}
