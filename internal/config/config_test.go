package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_BorderValues(t *testing.T) {
	cfg := Default()
	if cfg.BorderWidth != 2 {
		t.Fatalf("border width = %d, want 2", cfg.BorderWidth)
	}
	if cfg.BorderColor != 0xcccccc {
		t.Fatalf("border color = %#x, want 0xcccccc", cfg.BorderColor)
	}
	if cfg.FocusedBorderColor != 0x00ccff {
		t.Fatalf("focused border color = %#x, want 0x00ccff", cfg.FocusedBorderColor)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BorderWidth != DefaultBorderWidth {
		t.Fatalf("border width = %d, want default %d", cfg.BorderWidth, DefaultBorderWidth)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("# empty\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BorderColor != DefaultBorderColor {
		t.Fatalf("border color = %#x, want default", cfg.BorderColor)
	}
}

func TestLoadFromPath_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := strings.Join([]string{
		"border_width: 4",
		"focused_border_color: 0xff0000",
		"autostart: /home/me/bin/session",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BorderWidth != 4 {
		t.Fatalf("border width = %d, want 4", cfg.BorderWidth)
	}
	if cfg.FocusedBorderColor != 0xff0000 {
		t.Fatalf("focused border color = %#x, want 0xff0000", cfg.FocusedBorderColor)
	}
	if cfg.BorderColor != DefaultBorderColor {
		t.Fatalf("border color = %#x, want untouched default", cfg.BorderColor)
	}
	if cfg.Autostart != "/home/me/bin/session" {
		t.Fatalf("autostart = %q", cfg.Autostart)
	}
}

func TestLoadFromPath_UnknownKeyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("border_widht: 3\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}
