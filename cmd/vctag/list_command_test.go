package main

import (
	"bytes"
	"strings"
	"testing"

	"vctag/internal/comments"
)

func TestWriteGroupedPlain(t *testing.T) {
	var buf bytes.Buffer
	grouped := comments.Grouped{"title": {"A", "B"}, "artist": {"C"}}
	writeGrouped(&buf, grouped, true)

	want := "artist=C\ntitle=A\ntitle=B\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestWriteGroupedEmpty(t *testing.T) {
	var buf bytes.Buffer
	writeGrouped(&buf, comments.Grouped{}, true)
	if !strings.Contains(buf.String(), "No comments found.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestWriteGroupedTable(t *testing.T) {
	var buf bytes.Buffer
	grouped := comments.Grouped{"title": {"A"}}
	writeGrouped(&buf, grouped, false)
	out := buf.String()
	if !strings.Contains(out, "Name") || !strings.Contains(out, "title") {
		t.Fatalf("expected table output, got %q", out)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}}, nil)
	if !strings.Contains(out, "only") {
		t.Fatalf("expected row content, got %q", out)
	}
}
