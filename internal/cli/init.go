package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/tagr/internal/database"
	"github.com/aidanlsb/tagr/internal/ui"
)

// defaultRootSetting roots a database at the directory containing its
// .tagr directory.
const defaultRootSetting = ".."

var initCmd = &cobra.Command{
	Use:   "init [PATH...]",
	Short: "Create a new tag database",
	Long: `Creates a database at PATH/.tagr/db for each PATH given. With no PATH the
database is created at --database if set, otherwise at ./.tagr/db.

Paths stored in the database are relative to the directory holding .tagr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, err := initTargets(args)
		if err != nil {
			return handleError(err)
		}

		created := make([]string, 0, len(targets))
		for _, target := range targets {
			logger.Infof("creating database at %s", target)
			if err := database.Create(target, defaultRootSetting); err != nil {
				return handleError(err)
			}
			created = append(created, target)
			if !isJSONOutput() {
				fmt.Println(ui.Successf("created %s", target))
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"created": created}, &Meta{Count: len(created)})
		}
		return nil
	},
}

func initTargets(args []string) ([]string, error) {
	if len(args) > 0 {
		targets := make([]string, 0, len(args))
		for _, dir := range args {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return nil, err
			}
			targets = append(targets, filepath.Join(abs, database.DirName, database.FileName))
		}
		return targets, nil
	}

	if rootCmd.PersistentFlags().Changed("database") {
		return []string{databaseFlag}, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return []string{filepath.Join(cwd, database.DirName, database.FileName)}, nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
