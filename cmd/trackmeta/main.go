// Command trackmeta inspects and edits audio track metadata and keeps a
// catalog of snapshots.
package main

import (
	"os"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/simonhull/trackmeta"
	"github.com/simonhull/trackmeta/internal/config"
)

// app carries settings shared by every subcommand.
type app struct {
	cfg    *config.ConfigStruct
	logger *log.Entry

	// Flag overrides
	engine string
	source string
	dbPath string
	level  string
}

func (a *app) openOptions() []trackmeta.Option {
	opts := []trackmeta.Option{
		trackmeta.WithLogger(a.logger),
		trackmeta.WithConcurrency(a.cfg.Scan.Workers),
	}
	if a.cfg.Scan.Engine != "" {
		opts = append(opts, trackmeta.WithEngine(a.cfg.Scan.Engine))
	}
	if a.cfg.Scan.MaxArtworkBytes > 0 {
		opts = append(opts, trackmeta.WithMaxArtworkSize(a.cfg.Scan.MaxArtworkBytes))
	}
	return opts
}

// setup loads .env and the environment, then applies flag overrides.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	envErr := godotenv.Load()

	a.cfg = config.Load()
	if a.engine != "" {
		a.cfg.Scan.Engine = a.engine
	}
	if a.source != "" {
		a.cfg.Scan.Source = a.source
	}
	if a.dbPath != "" {
		a.cfg.Catalog.DBPath = a.dbPath
	}
	if a.level != "" {
		level, err := log.ParseLevel(a.level)
		if err != nil {
			return err
		}
		a.cfg.Logging.Level = level
	}

	a.logger = newLogger(a.cfg.Logging.Level, term.IsTerminal(int(os.Stderr.Fd())))
	if envErr != nil && !os.IsNotExist(envErr) {
		a.logger.Warnf("Error loading .env file: %v", envErr)
	}
	return nil
}

func newLogger(level log.Level, tty bool) *log.Entry {
	l := log.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(level)
	l.SetFormatter(&nested.Formatter{
		FieldsOrder:     []string{"module", "path"},
		TimestampFormat: "15:04:05",
		HideKeys:        true,
		NoColors:        !tty,
	})
	return l.WithField("module", "cli")
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               "trackmeta",
		Short:             "Read, edit and catalog audio track metadata",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.engine, "engine", "", "tag engine to use (default: TRACKMETA_ENGINE or best available)")
	flags.StringVar(&a.source, "source", "", "source label stored in snapshots (default: TRACKMETA_SOURCE)")
	flags.StringVar(&a.dbPath, "db", "", "catalog database path (default: TRACKMETA_DB_PATH)")
	flags.StringVar(&a.level, "log-level", "", "log level (default: TRACKMETA_LOG_LEVEL or warn)")

	root.AddCommand(
		newShowCommand(a),
		newSetCommand(a),
		newCoverCommand(a),
		newScanCommand(a),
		newTreeCommand(a),
		newAtomsCommand(),
		newVersionCommand(),
	)
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
