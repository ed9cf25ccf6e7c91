package config

import (
	"testing"
)

func TestGetHome_EnvVar(t *testing.T) {
	ResetHome()
	defer ResetHome()
	t.Setenv("FLUTTER_DRIVER_HOME", "/custom/path")

	got := GetHome()
	if got != "/custom/path" {
		t.Errorf("GetHome() = %q, want %q", got, "/custom/path")
	}
}

func TestGetHome_Fallback(t *testing.T) {
	ResetHome()
	defer ResetHome()
	t.Setenv("FLUTTER_DRIVER_HOME", "")

	if got := GetHome(); got == "" {
		t.Error("GetHome() returned empty string")
	}
}

func TestGetHome_Cached(t *testing.T) {
	ResetHome()
	defer ResetHome()
	t.Setenv("FLUTTER_DRIVER_HOME", "/first")

	first := GetHome()

	// Change env — should NOT affect cached value
	t.Setenv("FLUTTER_DRIVER_HOME", "/second")
	second := GetHome()

	if first != second {
		t.Errorf("GetHome() not cached: first=%q, second=%q", first, second)
	}
}
