package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/tagr/internal/ui"
)

type infoView struct {
	Database      string `json:"database"`
	Root          string `json:"root"`
	SchemaVersion int    `json:"schema_version"`
	Tags          int64  `json:"tags"`
	Values        int64  `json:"values"`
	Files         int64  `json:"files"`
	Directories   int64  `json:"directories"`
	Taggings      int64  `json:"taggings"`
	Implications  int64  `json:"implications"`
	TotalSize     int64  `json:"total_size"`
	LastModified  string `json:"last_modified,omitempty"`
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show database details and statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return handleError(err)
		}
		defer db.Close()

		stats, err := db.Stats()
		if err != nil {
			return handleError(err)
		}

		if isJSONOutput() {
			view := infoView{
				Database:      db.Path(),
				Root:          db.Root(),
				SchemaVersion: stats.SchemaVersion,
				Tags:          stats.TagCount,
				Values:        stats.ValueCount,
				Files:         stats.FileCount,
				Directories:   stats.DirectoryCount,
				Taggings:      stats.TaggingCount,
				Implications:  stats.ImplicationCount,
				TotalSize:     stats.TotalSize,
			}
			if !stats.LastModified.IsZero() {
				view.LastModified = stats.LastModified.UTC().Format(time.RFC3339)
			}
			outputSuccess(view, nil)
			return nil
		}

		fmt.Println(ui.Header("Database"))
		t := ui.NewTable(2)
		t.AddRow("path", db.Path())
		t.AddRow("root", db.Root())
		t.AddRow("schema", fmt.Sprintf("v%d", stats.SchemaVersion))
		fmt.Print(t.String())

		fmt.Println()
		fmt.Println(ui.Header("Contents"))
		t = ui.NewTable(2)
		t.AddRow("tags", humanize.Comma(stats.TagCount))
		t.AddRow("values", humanize.Comma(stats.ValueCount))
		t.AddRow("files", humanize.Comma(stats.FileCount)+" "+
			ui.Count(int(stats.DirectoryCount), "directory", "directories"))
		t.AddRow("taggings", humanize.Comma(stats.TaggingCount))
		t.AddRow("implications", humanize.Comma(stats.ImplicationCount))
		t.AddRow("total size", humanize.Bytes(uint64(stats.TotalSize)))
		if stats.LastModified.IsZero() {
			t.AddRow("last modified", ui.Hint("never"))
		} else {
			t.AddRow("last modified", fmt.Sprintf("%s %s",
				stats.LastModified.Local().Format("2006-01-02 15:04:05"),
				ui.Hint("("+humanize.Time(stats.LastModified)+")")))
		}
		fmt.Print(t.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
