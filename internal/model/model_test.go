package model

import (
	"path/filepath"
	"testing"
)

func TestFilePath(t *testing.T) {
	f := File{Directory: filepath.Join("photos", "2024"), Name: "beach.jpg"}
	want := filepath.Join("photos", "2024", "beach.jpg")
	if got := f.Path(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	top := File{Directory: ".", Name: "notes.txt"}
	if got := top.Path(); got != "notes.txt" {
		t.Errorf("expected %q, got %q", "notes.txt", got)
	}
}

func TestImplicationString(t *testing.T) {
	i := Implication{
		Tag:          Tag{ID: 1, Name: "mp3"},
		ImpliedTag:   Tag{ID: 2, Name: "music"},
		Value:        Value{},
		ImpliedValue: Value{},
	}
	if got := i.String(); got != "mp3 -> music" {
		t.Errorf("expected %q, got %q", "mp3 -> music", got)
	}

	i.Value = Value{ID: 3, Name: "2024"}
	i.Tag = Tag{ID: 4, Name: "year"}
	i.ImpliedValue = Value{ID: 5, Name: "recent"}
	if got := i.String(); got != "year=2024 -> music=recent" {
		t.Errorf("expected %q, got %q", "year=2024 -> music=recent", got)
	}
}
