package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ib-77/trebuchet/internal/config"
	"github.com/ib-77/trebuchet/internal/logging"
	"github.com/ib-77/trebuchet/pkg/pipeline"
	"github.com/ib-77/trebuchet/pkg/rules"
)

// persistentKeys maps the root persistent flags to configuration keys.
var persistentKeys = map[string]string{
	"file":       config.KeyInput,
	"log-level":  config.KeyLogLevel,
	"log-format": config.KeyLogFormat,
	"no-color":   config.KeyNoColor,
	"chunk-size": config.KeyChunkSize,
	"queue-size": config.KeyQueueSize,
	"workers":    config.KeyWorkers,
}

// app is the state shared by the subcommands once the configuration is
// loaded.
type app struct {
	configFile string
	envFile    string

	cfg config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "trebuchet",
		Short: "Stream a puzzle input through a concurrent pipeline and sum a per-line score",
		Long: `trebuchet reads an input file in small chunks, reassembles its lines and
scores every line in its own task. The scores are added up as the tasks
complete and the total is printed on stdout.

Configuration is read from defaults, an optional YAML file (--config), an
optional .env file (--env-file), TREBUCHET_* environment variables and
flags, each source overriding the previous one.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "YAML configuration file")
	pf.StringVar(&a.envFile, "env-file", "", ".env file exporting TREBUCHET_* variables (default ./.env if present)")
	pf.StringP("file", "f", "input", "input file")
	pf.String("log-level", "warn", "log level: trace, debug, info, warn, error or disabled")
	pf.String("log-format", logging.FormatConsole, "log format: console or json")
	pf.Bool("no-color", false, "disable colors in console logs")
	pf.Int("chunk-size", pipeline.DefaultChunkSize, "bytes read from the input at once")
	pf.Int("queue-size", pipeline.DefaultQueueSize, "capacity of the queues between stages")
	pf.Int("workers", 0, "maximum number of lines scored at once (0 for no limit)")

	root.AddCommand(newCalibrateCmd(a), newCubesCmd(a), newVersionCmd())
	return root
}

// load builds the configuration and the logger. Flags the running command
// does not define are skipped.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	opts := []config.LoaderOption{
		config.WithConfigFile(a.configFile),
		config.WithEnvFile(a.envFile),
	}
	for name, key := range persistentKeys {
		opts = append(opts, config.WithFlag(key, cmd.Flags().Lookup(name)))
	}
	for name, key := range localKeys {
		opts = append(opts, config.WithFlag(key, cmd.Flags().Lookup(name)))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(cfg.Log, cmd.ErrOrStderr())

	a.log.Debug().
		Str("command", cmd.Name()).
		Str("input", cfg.Input).
		Int("chunk_size", cfg.Pipeline.ChunkSize).
		Int("queue_size", cfg.Pipeline.QueueSize).
		Int("workers", cfg.Pipeline.Workers).
		Msg("configuration loaded")
	return nil
}

// run streams the configured input through rule and prints the total.
func (a *app) run(cmd *cobra.Command, rule rules.Rule) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(rule,
		pipeline.WithChunkSize(a.cfg.Pipeline.ChunkSize),
		pipeline.WithQueueSize(a.cfg.Pipeline.QueueSize),
		pipeline.WithWorkers(a.cfg.Pipeline.Workers),
	)

	summary, err := p.Run(a.log.WithContext(ctx), a.cfg.Input)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), summary.Total)
	return err
}

func main() {
	// Levels are set per logger by logging.New.
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
