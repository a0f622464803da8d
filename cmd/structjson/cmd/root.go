package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quickwritereader/structjson"
	zapadapter "github.com/quickwritereader/structjson/log/zap"
)

type envKey struct{}

// env is what PersistentPreRunE hands to every subcommand.
type env struct {
	cfg *Config
	log *zap.Logger
}

func (e *env) options() structjson.Options {
	return e.cfg.Options(zapadapter.ZapLogger{L: e.log})
}

func envFrom(cmd *cobra.Command) (*env, error) {
	e, ok := cmd.Context().Value(envKey{}).(*env)
	if !ok {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return e, nil
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "structjson",
		Short: "structjson - reflection driven struct/JSON codec",
		Long: `structjson encodes Go structs to JSON and back using field layouts
discovered once per type. The subcommands run the bundled samples,
benchmark decoding and inspect schemas.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel, cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, envKey{}, &env{cfg: cfg, log: log}))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "yaml config file")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.Bool("strict", false, "fail on missing required fields")
	pf.Bool("absent-as-null", false, "write null for absent fields")

	root.AddCommand(
		newPlayerCmd(),
		newBenchCmd(),
		newWeatherCmd(),
		newEscapeScannerCmd(),
		newSchemaCmd(),
		newConfigCmd(),
	)
	return root
}

// resolveConfig loads --config when given and applies flags that were set
// explicitly on top of it.
func resolveConfig(cmd *cobra.Command) (*Config, error) {
	cfg := DefaultConfig()
	flags := cmd.Flags()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("absent-as-null") {
		cfg.AbsentAsNull, _ = flags.GetBool("absent-as-null")
	}
	if f := flags.Lookup("iterations"); f != nil && f.Changed {
		cfg.Iterations, _ = flags.GetInt("iterations")
	}
	if f := flags.Lookup("codec"); f != nil && f.Changed {
		cfg.Codec, _ = flags.GetString("codec")
	}
	return cfg, nil
}

func newLogger(level string, cmd *cobra.Command) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	enc := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.AddSync(cmd.ErrOrStderr()),
		lvl,
	)
	return zap.New(core), nil
}
