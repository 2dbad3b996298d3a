// Package config loads settings from an optional config.yaml, INSPECTOR_*
// environment variables and XDG defaults.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// AppName is used for the XDG config and data directories.
const AppName = "bkv-inspector"

// Template names.
const (
	TemplateStructured = "structured"
	TemplateClassic    = "classic"
)

// Label set names.
const (
	LabelsHU = "hu"
	LabelsEN = "en"
)

// Config is the resolved application configuration.
type Config struct {
	OutputDir   string    `mapstructure:"output_dir"`
	DataDir     string    `mapstructure:"data_dir"`
	Template    string    `mapstructure:"template"`
	Labels      string    `mapstructure:"labels"`
	HeaderTitle string    `mapstructure:"header_title"`
	HeaderImage string    `mapstructure:"header_image"`
	Fonts       FontFiles `mapstructure:"fonts"`
	Compression int       `mapstructure:"compression"`
	LogLevel    string    `mapstructure:"log_level"`
}

// FontFiles points at TrueType files. Empty entries use the bundled Go fonts.
type FontFiles struct {
	Regular string `mapstructure:"regular"`
	Bold    string `mapstructure:"bold"`
	Title   string `mapstructure:"title"`
	Italic  string `mapstructure:"italic"`
}

// DefaultOutputDir is <Documents>/Inspections.
func DefaultOutputDir() string {
	return filepath.Join(xdg.UserDirs.Documents, "Inspections")
}

// XDGDataDir returns the directory holding the reference data store.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the directory searched for config.yaml.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		OutputDir:   DefaultOutputDir(),
		DataDir:     XDGDataDir(),
		Template:    TemplateStructured,
		Labels:      LabelsHU,
		Compression: 6,
		LogLevel:    "info",
	}
}

// Load reads cfgFile, or config.yaml from the working directory or the XDG
// config directory when cfgFile is empty. A missing default file is not an
// error; a missing explicit file is.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix("INSPECTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(XDGConfigDir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Template = strings.ToLower(strings.TrimSpace(cfg.Template))
	cfg.Labels = strings.ToLower(strings.TrimSpace(cfg.Labels))
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("template", d.Template)
	v.SetDefault("labels", d.Labels)
	v.SetDefault("header_title", d.HeaderTitle)
	v.SetDefault("header_image", d.HeaderImage)
	v.SetDefault("fonts.regular", d.Fonts.Regular)
	v.SetDefault("fonts.bold", d.Fonts.Bold)
	v.SetDefault("fonts.title", d.Fonts.Title)
	v.SetDefault("fonts.italic", d.Fonts.Italic)
	v.SetDefault("compression", d.Compression)
	v.SetDefault("log_level", d.LogLevel)
}

// Validate returns the first problem found.
func (c *Config) Validate() error {
	switch c.Template {
	case TemplateStructured, TemplateClassic:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, c.Template)
	}
	switch c.Labels {
	case LabelsHU, LabelsEN:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLabels, c.Labels)
	}
	if c.Compression < -1 || c.Compression > 9 {
		return fmt.Errorf("%w: %d", ErrInvalidCompression, c.Compression)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return ErrNoOutputDir
	}
	return nil
}
