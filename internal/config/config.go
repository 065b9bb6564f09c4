// Package config loads the chessboard settings from an optional YAML file
// and CHESSBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds everything the terminal front end can be tuned with.
type Config struct {
	Theme       string    `yaml:"theme" validate:"oneof=off brown green gray"`
	Glyphs      bool      `yaml:"glyphs"`
	Perspective string    `yaml:"perspective" validate:"oneof=white black"`
	Prompt      string    `yaml:"prompt" validate:"required,max=32"`
	HistoryFile string    `yaml:"history_file"`
	Log         LogConfig `yaml:"log"`
	SVG         SVGConfig `yaml:"svg"`
}

// LogConfig selects the log level, format and sinks.
type LogConfig struct {
	Level   string `yaml:"level" validate:"oneof=debug info warn error"`
	Format  string `yaml:"format" validate:"oneof=legacy console json"`
	File    string `yaml:"file"`
	Console bool   `yaml:"console"` // also log to stderr
}

// SVGConfig sizes exported board images.
type SVGConfig struct {
	SquareSize int `yaml:"square_size" validate:"min=10,max=200"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report yaml keys rather than Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Theme:       "brown",
		Glyphs:      true,
		Perspective: "white",
		Prompt:      "chess",
		Log: LogConfig{
			Level:  "info",
			Format: "legacy",
		},
		SVG: SVGConfig{SquareSize: 45},
	}
}

// Load reads path on top of the defaults, applies environment overrides
// and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("config file %s not found", path)
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("CHESSBOARD_THEME")); v != "" {
		cfg.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("CHESSBOARD_GLYPHS")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Glyphs = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("CHESSBOARD_PERSPECTIVE")); v != "" {
		cfg.Perspective = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("CHESSBOARD_PROMPT")); v != "" {
		cfg.Prompt = v
	}
	if v := strings.TrimSpace(os.Getenv("CHESSBOARD_HISTORY_FILE")); v != "" {
		cfg.HistoryFile = v
	}
	if v := strings.TrimSpace(os.Getenv("CHESSBOARD_LOG_LEVEL")); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("CHESSBOARD_LOG_FORMAT")); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("CHESSBOARD_LOG_FILE")); v != "" {
		cfg.Log.File = v
	}
	if v := strings.TrimSpace(os.Getenv("CHESSBOARD_LOG_CONSOLE")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.Console = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("CHESSBOARD_SVG_SQUARE_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SVG.SquareSize = n
		}
	}
}

// Validate checks every field and joins the failures into one error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var details strings.Builder
	for _, fe := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		field := fieldPath(fe)
		switch fe.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", field))
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		case "min":
			details.WriteString(fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max":
			if fe.Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at most %s", field, fe.Param()))
			}
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", details.String())
}

// fieldPath turns "Config.log.level" into "log.level".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
