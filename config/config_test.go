package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Template != TemplateStructured || cfg.Labels != LabelsHU {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if filepath.Base(cfg.OutputDir) != "Inspections" {
		t.Errorf("output dir = %s, want .../Inspections", cfg.OutputDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		content := `
output_dir: /srv/reports
template: Classic
labels: en
compression: 0
fonts:
  regular: /fonts/DejaVuSans.ttf
`
		if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := Load(configFile)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.OutputDir != "/srv/reports" {
			t.Errorf("output_dir = %s", cfg.OutputDir)
		}
		if cfg.Template != TemplateClassic {
			t.Errorf("template = %s, want classic", cfg.Template)
		}
		if cfg.Labels != LabelsEN {
			t.Errorf("labels = %s, want en", cfg.Labels)
		}
		if cfg.Compression != 0 {
			t.Errorf("compression = %d, want 0", cfg.Compression)
		}
		if cfg.Fonts.Regular != "/fonts/DejaVuSans.ttf" {
			t.Errorf("fonts.regular = %s", cfg.Fonts.Regular)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("log_level default = %s", cfg.LogLevel)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configFile, []byte("log_level: info\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("INSPECTOR_LOG_LEVEL", "debug")
		t.Setenv("INSPECTOR_FONTS_BOLD", "/fonts/bold.ttf")

		cfg, err := Load(configFile)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("log_level = %s, want debug", cfg.LogLevel)
		}
		if cfg.Fonts.Bold != "/fonts/bold.ttf" {
			t.Errorf("fonts.bold = %s", cfg.Fonts.Bold)
		}
	})

	t.Run("missing explicit file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatal("expected error for missing config file")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"unknown template", func(c *Config) { c.Template = "fancy" }, ErrUnknownTemplate},
		{"unknown labels", func(c *Config) { c.Labels = "de" }, ErrUnknownLabels},
		{"compression too high", func(c *Config) { c.Compression = 10 }, ErrInvalidCompression},
		{"compression too low", func(c *Config) { c.Compression = -2 }, ErrInvalidCompression},
		{"empty output dir", func(c *Config) { c.OutputDir = " " }, ErrNoOutputDir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
