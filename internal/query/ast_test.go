package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTagsAndValues(t *testing.T) {
	tests := []struct {
		input      string
		wantTags   []string
		wantValues []string
	}{
		{input: "a", wantTags: []string{"a"}},
		{input: "a b a", wantTags: []string{"a", "b", "a"}},
		{
			input:      "not (year < 2000 or year > 2010) and genre = jazz",
			wantTags:   []string{"year", "year", "genre"},
			wantValues: []string{"2000", "2010", "jazz"},
		},
		{
			input:      "x = 1 or y",
			wantTags:   []string{"x", "y"},
			wantValues: []string{"1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e := mustParse(t, tt.input)
			if diff := cmp.Diff(tt.wantTags, Tags(e)); diff != "" {
				t.Errorf("Tags mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantValues, Values(e)); diff != "" {
				t.Errorf("Values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTagsNil(t *testing.T) {
	if got := Tags(nil); got != nil {
		t.Errorf("Tags(nil) = %v, want nil", got)
	}
	if got := Nesting(nil); got != 0 {
		t.Errorf("Nesting(nil) = %d, want 0", got)
	}
}

func TestNesting(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"a", 0},
		{"not a", 1},
		{"a b c d", 0},
		{"a or b or c or d", 0},
		{"((a b) c) d", 0},
		{"a or b c", 1},
		{"a or (b and not c)", 2},
		{"not (a or b)", 1},
		{"not not a", 2},
		{"a and not (b and not (c and not d))", 3},
	}
	for _, tt := range tests {
		if got := Nesting(mustParse(t, tt.input)); got != tt.want {
			t.Errorf("Nesting(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestCompareOpString(t *testing.T) {
	ops := map[CompareOp]string{
		CompareEq:  "==",
		CompareNeq: "!=",
		CompareLt:  "<",
		CompareGt:  ">",
		CompareLte: "<=",
		CompareGte: ">=",
	}
	for op, want := range ops {
		if got := op.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", op, got, want)
		}
	}
}
