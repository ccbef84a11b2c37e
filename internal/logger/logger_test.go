package logger

import "testing"

func TestInitLevels(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		if err := Init(level, ""); err != nil {
			t.Errorf("Init(%q): %v", level, err)
		}
	}
	Sync()
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init("verbose", ""); err == nil {
		t.Error("expected error for unknown level")
	}
}
