package database_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/aidanlsb/tagr/internal/database"
	"github.com/aidanlsb/tagr/internal/model"
	"github.com/aidanlsb/tagr/internal/query"
	"github.com/aidanlsb/tagr/internal/testutil"
)

func TestTagsMissing(t *testing.T) {
	db := seedLibrary(t)
	tags := db.DB.Tags()

	got, err := tags.Missing([]string{"music", "nope", "Music", "nope", "work"}, query.CaseSensitive)
	if err != nil {
		t.Fatalf("Missing: %v", err)
	}
	if diff := cmp.Diff([]string{"nope", "Music"}, got); diff != "" {
		t.Errorf("case sensitive mismatch (-want +got):\n%s", diff)
	}

	got, err = tags.Missing([]string{"MUSIC", "nope"}, query.CaseInsensitive)
	if err != nil {
		t.Fatalf("Missing: %v", err)
	}
	if diff := cmp.Diff([]string{"nope"}, got); diff != "" {
		t.Errorf("case insensitive mismatch (-want +got):\n%s", diff)
	}

	got, err = tags.Missing(nil, query.CaseSensitive)
	if err != nil || got != nil {
		t.Errorf("Missing(nil) = %v, %v; want nil, nil", got, err)
	}
}

func TestValuesMissing(t *testing.T) {
	db := seedLibrary(t)

	got, err := db.DB.Values().Missing([]string{"1959", "1960", "jazz", "Jazz"}, query.CaseSensitive)
	if err != nil {
		t.Fatalf("Missing: %v", err)
	}
	if diff := cmp.Diff([]string{"1960", "Jazz"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestListings(t *testing.T) {
	db := seedLibrary(t)

	tags, err := db.DB.Tags().All()
	if err != nil {
		t.Fatal(err)
	}
	var tagNames []string
	for _, tag := range tags {
		tagNames = append(tagNames, tag.Name)
	}
	wantTags := []string{"bebop", "collection", "genre", "music", "smooth", "work", "year"}
	if diff := cmp.Diff(wantTags, tagNames); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}

	values, err := db.DB.Values().ForTag("GENRE", query.CaseInsensitive)
	if err != nil {
		t.Fatal(err)
	}
	var valueNames []string
	for _, v := range values {
		valueNames = append(valueNames, v.Name)
	}
	if diff := cmp.Diff([]string{"jazz", "rock"}, valueNames); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	all, err := db.DB.Values().All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Errorf("expected 5 values, got %d", len(all))
	}
}

func TestImplicationsAll(t *testing.T) {
	db := seedLibrary(t)

	imps, err := db.DB.Implications().All()
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, imp := range imps {
		got = append(got, imp.String())
	}
	want := []string{"bebop -> genre=jazz", "genre=jazz -> smooth"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if imps[0].Value != (model.Value{}) {
		t.Errorf("expected zero value for valueless implication, got %+v", imps[0].Value)
	}
}

func TestStats(t *testing.T) {
	db := seedLibrary(t)

	got, err := db.DB.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	want := &database.Stats{
		SchemaVersion:    database.CurrentSchemaVersion,
		TagCount:         7,
		ValueCount:       5,
		FileCount:        5,
		DirectoryCount:   1,
		TaggingCount:     10,
		ImplicationCount: 2,
		TotalSize:        650,
		LastModified:     testutil.BaseModTime.Add(4 * time.Second),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestStatsEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)

	got, err := db.DB.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if got.FileCount != 0 || got.TotalSize != 0 || !got.LastModified.IsZero() {
		t.Errorf("unexpected stats for empty database: %+v", got)
	}
}
