package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/tagr/internal/model"
	"github.com/aidanlsb/tagr/internal/query"
)

var valuesIgnoreCase bool

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tags in the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return handleError(err)
		}
		defer db.Close()

		tags, err := db.Tags().All()
		if err != nil {
			return handleError(err)
		}

		names := make([]string, 0, len(tags))
		for _, t := range tags {
			names = append(names, t.Name)
		}
		printNames("tags", names)
		return nil
	},
}

var valuesCmd = &cobra.Command{
	Use:   "values [TAG]",
	Short: "List stored values, or the values applied with TAG",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return handleError(err)
		}
		defer db.Close()

		var values []model.Value
		if len(args) == 1 {
			casing := query.CaseSensitive
			if valuesIgnoreCase {
				casing = query.CaseInsensitive
			}
			values, err = db.Values().ForTag(args[0], casing)
		} else {
			values, err = db.Values().All()
		}
		if err != nil {
			return handleError(err)
		}

		names := make([]string, 0, len(values))
		for _, v := range values {
			names = append(names, v.Name)
		}
		printNames("values", names)
		return nil
	},
}

var implicationsCmd = &cobra.Command{
	Use:   "implications",
	Short: "List tag implications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return handleError(err)
		}
		defer db.Close()

		imps, err := db.Implications().All()
		if err != nil {
			return handleError(err)
		}

		if isJSONOutput() {
			if imps == nil {
				imps = []model.Implication{}
			}
			outputSuccess(map[string]interface{}{"implications": imps}, &Meta{Count: len(imps)})
			return nil
		}
		for _, imp := range imps {
			fmt.Println(imp.String())
		}
		return nil
	},
}

// printNames writes one name per line, or a JSON list under key.
func printNames(key string, names []string) {
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{key: names}, &Meta{Count: len(names)})
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}

func init() {
	valuesCmd.Flags().BoolVarP(&valuesIgnoreCase, "ignore-case", "i", false, "Match TAG regardless of case")
	rootCmd.AddCommand(tagsCmd, valuesCmd, implicationsCmd)
}
