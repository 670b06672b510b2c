package comments_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"vctag/internal/comments"
	"vctag/internal/services"
)

func TestFromLinesPreservesOrder(t *testing.T) {
	src := comments.FromLines([]string{"title=First", "artist=Someone", "title=Second"})
	set, err := src.Pairs()
	if err != nil {
		t.Fatalf("Pairs returned error: %v", err)
	}
	want := comments.Set{
		{Name: "title", Value: "First"},
		{Name: "artist", Value: "Someone"},
		{Name: "title", Value: "Second"},
	}
	if !reflect.DeepEqual(set, want) {
		t.Fatalf("expected %v, got %v", want, set)
	}
}

func TestFromLinesRejectsMissingSeparator(t *testing.T) {
	src := comments.FromLines([]string{"title=ok", "titleOnly"})
	if _, err := src.Pairs(); !errors.Is(err, services.ErrMalformedLine) {
		t.Fatalf("expected malformed line error, got %v", err)
	}
}

func TestFromLinesEmpty(t *testing.T) {
	if _, err := comments.FromLines(nil).Pairs(); !errors.Is(err, services.ErrEmptyInput) {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

func TestFromMapSortsNames(t *testing.T) {
	src := comments.FromMap(map[string]string{"title": "A", "artist": "B", "genre": "C"})
	set, err := src.Pairs()
	if err != nil {
		t.Fatalf("Pairs returned error: %v", err)
	}
	want := comments.Set{
		{Name: "artist", Value: "B"},
		{Name: "genre", Value: "C"},
		{Name: "title", Value: "A"},
	}
	if !reflect.DeepEqual(set, want) {
		t.Fatalf("expected %v, got %v", want, set)
	}
}

func TestFromGroupsExpandsValuesInOrder(t *testing.T) {
	src := comments.FromGroups(map[string][]string{
		"title":  {"A", "B"},
		"artist": {"C"},
	})
	set, err := src.Pairs()
	if err != nil {
		t.Fatalf("Pairs returned error: %v", err)
	}
	want := comments.Set{
		{Name: "artist", Value: "C"},
		{Name: "title", Value: "A"},
		{Name: "title", Value: "B"},
	}
	if !reflect.DeepEqual(set, want) {
		t.Fatalf("expected %v, got %v", want, set)
	}
}

func TestFromGroupsRejectsEmptyValueList(t *testing.T) {
	src := comments.FromGroups(map[string][]string{"title": {}})
	if _, err := src.Pairs(); !errors.Is(err, services.ErrEmptyInput) {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

func TestFromPairsSanitizesLikeFlatList(t *testing.T) {
	fromPairs, err := comments.FromPairs([]comments.Pair{{Name: " ti=tle ", Value: " Some\nValue "}}).Pairs()
	if err != nil {
		t.Fatalf("FromPairs resolution failed: %v", err)
	}
	fromLines, err := comments.FromLines([]string{" title = SomeValue "}).Pairs()
	if err != nil {
		t.Fatalf("FromLines resolution failed: %v", err)
	}
	if fromPairs[0].Value != "SomeValue" {
		t.Fatalf("expected newline stripped from value, got %q", fromPairs[0].Value)
	}
	if fromPairs[0].Name != "title" {
		t.Fatalf("expected separator stripped from name, got %q", fromPairs[0].Name)
	}
	if !reflect.DeepEqual(fromPairs, fromLines) {
		t.Fatalf("expected identical sanitization, got %v vs %v", fromPairs, fromLines)
	}
}

func TestZeroSourceIsEmptyInput(t *testing.T) {
	var src comments.Source
	if _, err := src.Pairs(); !errors.Is(err, services.ErrEmptyInput) {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

func TestFileSourceHasNoPairs(t *testing.T) {
	src := comments.FromFile("/tmp/comments.txt")
	if !src.IsFile() {
		t.Fatal("expected file source")
	}
	if src.Path() != "/tmp/comments.txt" {
		t.Fatalf("unexpected path %q", src.Path())
	}
	if _, err := src.Pairs(); err == nil {
		t.Fatal("expected error resolving file source in memory")
	}
}

func TestValidateFileCountsTagLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.txt")
	content := "title=A\n\nartist=B\ntitle=C\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write comments file: %v", err)
	}
	count, err := comments.ValidateFile(path)
	if err != nil {
		t.Fatalf("ValidateFile returned error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 tag lines, got %d", count)
	}
}

func TestValidateFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.txt")
	if err := os.WriteFile(path, []byte("\n\n  \n"), 0o644); err != nil {
		t.Fatalf("write comments file: %v", err)
	}
	if _, err := comments.ValidateFile(path); !errors.Is(err, services.ErrEmptyInput) {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

func TestValidateFileMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.txt")
	if err := os.WriteFile(path, []byte("title=A\nbroken line\n"), 0o644); err != nil {
		t.Fatalf("write comments file: %v", err)
	}
	if _, err := comments.ValidateFile(path); !errors.Is(err, services.ErrMalformedLine) {
		t.Fatalf("expected malformed line error, got %v", err)
	}
}

func TestValidateFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.txt")
	if _, err := comments.ValidateFile(path); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
