package main

import (
	"os"

	"github.com/denismitr/roster"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose  bool
	envFile  string
	dbPath   string
	pageSize int

	logger *zap.Logger
	env    settings
)

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Employee shift scheduling from the terminal",
	Long: `roster keeps users, shifts, notes and announcements in a local JSON
database and shows the employee and manager dashboards as tables.

Settings come from flags, then ROSTER_* environment variables, then an
optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if env, err = loadSettings(envFile); err != nil {
			return err
		}

		if !cmd.Flags().Changed("db") {
			dbPath = env.DBPath
		}

		if !cmd.Flags().Changed("page-size") {
			pageSize = env.PageSize
		}

		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(env.LogLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		logger, err = config.Build()
		if err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// openDB opens the database for one command. The returned closer must be
// called before the command returns.
func openDB() (*roster.DB, roster.Closer, error) {
	db, closer, err := roster.Open(dbPath, &roster.Config{
		PersistenceStrategy: roster.Sync,
		Logger:              logger,
	})
	if err != nil {
		return nil, roster.NullCloser, err
	}

	logger.Debug("database opened", zap.String("path", dbPath), zap.Int("documents", db.Count()))
	return db, closer, nil
}

// closeDB runs closer and reports its error through err unless the command
// already failed.
func closeDB(closer roster.Closer, err *error) {
	if cerr := closer(); cerr != nil {
		logger.Error("could not close database", zap.String("path", dbPath), zap.Error(cerr))
		if *err == nil {
			*err = errors.Wrapf(cerr, "could not close database %s", dbPath)
		}
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath, "Database file, or :memory:")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 0, "Rows per table page")

	rootCmd.AddCommand(seedCmd, loginCmd, employeeCmd, managerCmd, noteCmd, announceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
