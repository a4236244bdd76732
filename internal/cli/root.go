// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aidanlsb/tagr/internal/config"
	"github.com/aidanlsb/tagr/internal/database"
	"github.com/aidanlsb/tagr/internal/paths"
	"github.com/aidanlsb/tagr/internal/query"
	"github.com/aidanlsb/tagr/internal/ui"
)

const databaseEnvVar = "TAGR_DB"

var (
	// Global flags
	databaseFlag string
	configPath   string
	verbosity    int

	// Resolved values
	cfg      *config.Config
	logger   = ui.NewLogger(ui.LevelWarn)
	settings = viper.New()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tagr",
	Short: "tagr - query files by tag",
	Long: `tagr finds files in a tag database using a small query language:
tags, tag/value comparisons, and, or, not and parentheses.

The database is taken from --database, then $TAGR_DB, then the config file,
and otherwise from the nearest .tagr/db in this or a parent directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetLevel(ui.Verbosity(verbosity))

		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		settings.SetDefault("database", cfg.Database)
		return nil
	},
}

// Execute runs the CLI. Errors are reported here, as JSON or as text on
// stderr, and returned so the caller can set the exit status.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil || errors.Is(err, errReported) {
		return err
	}

	if jsonOutput {
		reportJSON(err)
		return err
	}
	printError(err)
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&databaseFlag, "database", "D", "", "Path to the database file (overrides $"+databaseEnvVar+")")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase diagnostic output (-v info, -vv debug with SQL)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")

	_ = settings.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))
	_ = settings.BindEnv("database", databaseEnvVar)
}

func loadConfig() (*config.Config, error) {
	var (
		loaded *config.Config
		err    error
	)
	if strings.TrimSpace(configPath) != "" {
		loaded, err = config.LoadFrom(configPath)
	} else {
		loaded, err = config.Load()
	}
	if err != nil {
		return nil, &configError{err: err}
	}
	return loaded, nil
}

// resolveDatabasePath applies the database precedence: flag, environment,
// config file, then an upward search from the working directory.
func resolveDatabasePath() (string, error) {
	if p := strings.TrimSpace(settings.GetString("database")); p != "" {
		return p, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	p, err := paths.FindDatabase(cwd)
	if err != nil {
		return "", fmt.Errorf("%w: %w", database.ErrDatabaseNotFound, err)
	}
	return p, nil
}

// openDatabase opens the resolved database with diagnostics routed to the
// logger. Callers close it.
func openDatabase() (*database.Database, error) {
	dbPath, err := resolveDatabasePath()
	if err != nil {
		return nil, err
	}
	logger.Infof("using database %s", dbPath)

	db, err := database.Open(dbPath)
	if err != nil {
		return nil, err
	}
	db.SetLogger(logger)
	logger.WithField("root", db.Root()).Debugf("opened database")
	return db, nil
}

// printError writes err to stderr, one line per failure for aggregate
// query errors.
func printError(err error) {
	var ve *query.ValidationError
	if errors.As(err, &ve) {
		for _, line := range ve.Lines() {
			fmt.Fprintf(os.Stderr, "tagr: %s\n", line)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "tagr: %s\n", err)
	if _, suggestion, _ := classifyError(err); suggestion != "" {
		fmt.Fprintln(os.Stderr, ui.Hint(suggestion))
	}
}
