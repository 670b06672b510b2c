package main

import (
	"testing"
)

func TestTagSourceInlineEntries(t *testing.T) {
	src, err := tagSource([]string{"title=A", "artist=B"}, "")
	if err != nil {
		t.Fatalf("tagSource returned error: %v", err)
	}
	if src.IsFile() {
		t.Fatal("expected in-memory source")
	}
	set, err := src.Pairs()
	if err != nil {
		t.Fatalf("Pairs returned error: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(set))
	}
}

func TestTagSourceFromFile(t *testing.T) {
	src, err := tagSource(nil, "/tmp/comments.txt")
	if err != nil {
		t.Fatalf("tagSource returned error: %v", err)
	}
	if !src.IsFile() || src.Path() != "/tmp/comments.txt" {
		t.Fatalf("expected file source, got %+v", src)
	}
}

func TestTagSourceRejectsMixedInput(t *testing.T) {
	if _, err := tagSource([]string{"title=A"}, "/tmp/comments.txt"); err == nil {
		t.Fatal("expected error when combining --from-file with inline entries")
	}
}
