package query

import (
	"fmt"
	"strings"
)

// TagSpecificity selects whether implied tags count as matches.
type TagSpecificity int

const (
	// TagsAll matches explicit tags and tags implied through implications.
	TagsAll TagSpecificity = iota
	// TagsExplicitOnly matches only tags applied directly to a file.
	TagsExplicitOnly
)

// Casing selects how tag and value names are compared.
type Casing int

const (
	CaseSensitive Casing = iota
	CaseInsensitive
)

// Collation returns the COLLATE clause for name comparisons, with a leading
// space, or "" for the default binary comparison.
func (c Casing) Collation() string {
	if c == CaseInsensitive {
		return " COLLATE NOCASE"
	}
	return ""
}

// FileTypeSpecificity restricts results to files, directories or both.
type FileTypeSpecificity int

const (
	FileTypeAny FileTypeSpecificity = iota
	FileTypeFileOnly
	FileTypeDirectoryOnly
)

// Sort selects the ordering of query results.
type Sort int

const (
	SortName Sort = iota // directory, then name
	SortNone
	SortID
	SortTime
	SortSize
)

var sortNames = map[string]Sort{
	"name": SortName,
	"none": SortNone,
	"id":   SortID,
	"time": SortTime,
	"size": SortSize,
}

// ParseSort parses a sort mode name. The empty string selects SortName.
func ParseSort(s string) (Sort, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortName, nil
	}
	if sort, ok := sortNames[s]; ok {
		return sort, nil
	}
	return SortName, fmt.Errorf("invalid sort %q (expected name, none, id, time or size)", s)
}

func (s Sort) String() string {
	for name, v := range sortNames {
		if v == s {
			return name
		}
	}
	return "name"
}

// Options configures how a query is compiled.
type Options struct {
	Specificity TagSpecificity
	Casing      Casing
	FileType    FileTypeSpecificity
	// Path limits results to a directory subtree or a single file. Empty or
	// root paths apply no restriction.
	Path string
	Sort Sort
}
