package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/tagr/internal/config"
	"github.com/aidanlsb/tagr/internal/model"
	"github.com/aidanlsb/tagr/internal/paths"
	"github.com/aidanlsb/tagr/internal/query"
)

// queryFlags are the flags shared by commands that run a file query.
type queryFlags struct {
	dirsOnly   bool
	filesOnly  bool
	count      bool
	path       string
	explicit   bool
	sort       string
	ignoreCase bool
	print0     bool
}

func (f *queryFlags) register(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.dirsOnly, "directory", "d", false, "List only items that are directories")
	fs.BoolVarP(&f.filesOnly, "file", "f", false, "List only items that are files")
	fs.BoolVarP(&f.count, "count", "c", false, "List the number of matching files rather than their names")
	fs.StringVarP(&f.path, "path", "p", "", "List only items under PATH (a directory) or PATH itself")
	fs.BoolVarP(&f.explicit, "explicit", "e", false, "List only explicitly tagged files, ignoring implications")
	fs.StringVarP(&f.sort, "sort", "s", "", "Sort output: name (default), none, id, time, size")
	fs.BoolVarP(&f.ignoreCase, "ignore-case", "i", false, "Ignore the case of tag and value names")
	fs.BoolVarP(&f.print0, "print0", "0", false, "Delimit files with a NUL character rather than newline")
}

// options builds query options from the flags, falling back to config
// defaults for flags that were not given. root and cwd resolve --path.
func (f *queryFlags) options(fs *pflag.FlagSet, defaults *config.Config, root, cwd string) (query.Options, error) {
	if f.dirsOnly && f.filesOnly {
		return query.Options{}, &inputError{msg: "--directory and --file are mutually exclusive"}
	}

	opts := query.Options{}
	if defaults != nil {
		opts = defaults.QueryOptions()
	}

	if fs.Changed("explicit") {
		opts.Specificity = query.TagsAll
		if f.explicit {
			opts.Specificity = query.TagsExplicitOnly
		}
	}
	if fs.Changed("ignore-case") {
		opts.Casing = query.CaseSensitive
		if f.ignoreCase {
			opts.Casing = query.CaseInsensitive
		}
	}
	if fs.Changed("sort") {
		sort, err := query.ParseSort(f.sort)
		if err != nil {
			return query.Options{}, &inputError{msg: err.Error()}
		}
		opts.Sort = sort
	}

	switch {
	case f.dirsOnly:
		opts.FileType = query.FileTypeDirectoryOnly
	case f.filesOnly:
		opts.FileType = query.FileTypeFileOnly
	}

	if f.path != "" {
		if scope := paths.Stored(root, cwd, f.path); !paths.IsRoot(scope) {
			opts.Path = scope
		}
	}
	return opts, nil
}

func (f *queryFlags) separator() string {
	if f.print0 {
		return "\x00"
	}
	return "\n"
}

// fileResult is the JSON form of a matched file.
type fileResult struct {
	Path string `json:"path"`
	model.File
}

var filesFlags queryFlags

var filesCmd = &cobra.Command{
	Use:     "files [QUERY...]",
	Aliases: []string{"query"},
	Short:   "List files matching a tag query",
	Long: `Lists the files whose tags match QUERY. Arguments are joined with
spaces to form the query; with no query every file is listed.

Examples:
  tagr files music
  tagr files 'music and not (genre = rock or year < 1960)'
  tagr files -c -d holiday
  tagr files -p photos 'year >= 2020' -0 | xargs -0 ls -l

Run 'tagr docs' for the full query language.`,
	RunE: runFiles,
}

func runFiles(cmd *cobra.Command, args []string) error {
	start := time.Now()
	text := strings.Join(args, " ")

	db, err := openDatabase()
	if err != nil {
		return handleError(err)
	}
	defer db.Close()

	cwd, err := os.Getwd()
	if err != nil {
		return handleError(err)
	}
	opts, err := filesFlags.options(cmd.Flags(), cfg, db.Root(), cwd)
	if err != nil {
		return handleError(err)
	}
	logger.Debugf("query %q with options %+v", text, opts)

	store := db.Files()

	if filesFlags.count {
		n, err := store.QueryCount(text, opts)
		if err != nil {
			return handleError(err)
		}
		elapsed := time.Since(start).Milliseconds()
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"count": n}, &Meta{Count: int(n), QueryTimeMs: elapsed})
			return nil
		}
		fmt.Printf("%d%s", n, filesFlags.separator())
		return nil
	}

	files, err := store.Query(text, opts)
	if err != nil {
		return handleError(err)
	}
	logger.Infof("%d files matched in %s", len(files), time.Since(start))

	if isJSONOutput() {
		results := make([]fileResult, 0, len(files))
		for _, f := range files {
			results = append(results, fileResult{Path: paths.Absolute(db.Root(), f.Path()), File: f})
		}
		outputSuccess(map[string]interface{}{"files": results}, &Meta{
			Count:       len(results),
			QueryTimeMs: time.Since(start).Milliseconds(),
		})
		return nil
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	sep := filesFlags.separator()
	for _, f := range files {
		fmt.Fprintf(w, "%s%s", paths.Display(cwd, paths.Absolute(db.Root(), f.Path())), sep)
	}
	return nil
}

func init() {
	filesFlags.register(filesCmd.Flags())
	rootCmd.AddCommand(filesCmd)
}
