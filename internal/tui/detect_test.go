package tui

import (
	"os"
	"testing"
)

func TestDetectMode_NO_COLOR(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("PGLOAD_PLAIN", "")

	if got := DetectMode(os.Stdout); got != ModePlain {
		t.Errorf("DetectMode() = %d, want ModePlain", got)
	}
}

func TestDetectMode_PGLOAD_PLAIN(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("PGLOAD_PLAIN", "1")

	if got := DetectMode(os.Stdout); got != ModePlain {
		t.Errorf("DetectMode() = %d, want ModePlain", got)
	}
}

func TestDetectMode_NilWriter(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("PGLOAD_PLAIN", "")

	if got := DetectMode(nil); got != ModePlain {
		t.Errorf("DetectMode(nil) = %d, want ModePlain", got)
	}
}

func TestDetectMode_NoTerminal(t *testing.T) {
	// A regular file is never a terminal.
	t.Setenv("NO_COLOR", "")
	t.Setenv("PGLOAD_PLAIN", "")

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := DetectMode(f); got != ModePlain {
		t.Errorf("DetectMode() = %d, want ModePlain for a regular file", got)
	}
}
