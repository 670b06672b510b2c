package services_test

import (
	"errors"
	"strings"
	"testing"

	"vctag/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "vorbiscomment", "list", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"vorbiscomment", "list", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "editor", "append", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected nil marker to default to ErrExternalTool, got %v", err)
	}
}

func TestWrapWithoutDetail(t *testing.T) {
	err := services.Wrap(services.ErrEmptyInput, "", "", "", nil)
	if !strings.Contains(err.Error(), "operation failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}
