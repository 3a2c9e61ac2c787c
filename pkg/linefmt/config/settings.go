package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Defaults for the fixed generator.
const (
	DefaultInput        = "test.txt"
	DefaultOutput       = "test-python.txt"
	DefaultLogLevel     = "warn"
	DefaultMaxLineBytes = 1 << 20
)

// Recognised keys.
const (
	KeyInput        = "input"
	KeyOutput       = "output"
	KeyLogLevel     = "log_level"
	KeyHistory      = "history"
	KeyMaxLineBytes = "max_line_bytes"
)

var knownKeys = map[string]bool{
	KeyInput:        true,
	KeyOutput:       true,
	KeyLogLevel:     true,
	KeyHistory:      true,
	KeyMaxLineBytes: true,
}

// Sentinel errors for settings validation.
var (
	// ErrUnknownKey indicates the file holds a key linefmt does not read.
	ErrUnknownKey = errors.New("unknown config key")

	// ErrInvalidValue indicates a key holds an unusable value.
	ErrInvalidValue = errors.New("invalid config value")
)

// Settings are the resolved run settings.
type Settings struct {
	// Input is the template file path.
	Input string
	// Output is the file written in truncate mode.
	Output string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// History is the SQLite run history path; empty disables history.
	History string
	// MaxLineBytes bounds the length of a single input line.
	MaxLineBytes int
}

// Defaults returns the settings of the fixed generator.
func Defaults() Settings {
	return Settings{
		Input:        DefaultInput,
		Output:       DefaultOutput,
		LogLevel:     DefaultLogLevel,
		MaxLineBytes: DefaultMaxLineBytes,
	}
}

// Load reads settings from path. An empty path yields Defaults().
func Load(path string) (Settings, error) {
	if path == "" {
		return Defaults(), nil
	}
	src, err := ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	return FromSource(src)
}

// FromSource resolves settings from src on top of Defaults() and validates
// them.
func FromSource(src Source) (Settings, error) {
	var unknown []string
	for _, k := range src.Keys() {
		if !knownKeys[k] {
			unknown = append(unknown, fmt.Sprintf("%s (%s)", k, src.Position(k)))
		}
	}
	if len(unknown) > 0 {
		return Settings{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(unknown, ", "))
	}

	s := Defaults()
	stringKeys := []struct {
		key string
		dst *string
	}{
		{KeyInput, &s.Input},
		{KeyOutput, &s.Output},
		{KeyLogLevel, &s.LogLevel},
		{KeyHistory, &s.History},
	}
	for _, sk := range stringKeys {
		v, ok, err := src.String(sk.key)
		if err != nil {
			return Settings{}, err
		}
		if ok {
			*sk.dst = v
		}
	}

	n, ok, err := src.Int(KeyMaxLineBytes)
	if err != nil {
		return Settings{}, err
	}
	if ok {
		s.MaxLineBytes = n
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks that the settings can drive a run.
func (s Settings) Validate() error {
	if s.Input == "" {
		return fmt.Errorf("%w: input path is empty", ErrInvalidValue)
	}
	if s.Output == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalidValue)
	}
	if s.MaxLineBytes <= 0 {
		return fmt.Errorf("%w: max_line_bytes must be positive, got %d", ErrInvalidValue, s.MaxLineBytes)
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level for LogLevel. Validate must have passed.
func (s Settings) Level() slog.Level {
	level, _ := ParseLevel(s.LogLevel)
	return level
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidValue, name)
	}
	return level, nil
}
