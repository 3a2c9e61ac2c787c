package main

import (
	"github.com/spf13/pflag"

	"github.com/randalmurphal/linefmt/pkg/linefmt/config"
)

// configureFlags sets up the settings flags on fs.
func configureFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to configuration file (JSON or YAML)")
	fs.StringP("input", "i", config.DefaultInput, "Template file to read")
	fs.StringP("output", "o", config.DefaultOutput, "Fixture file to write (truncated)")
	fs.String("history", "", "SQLite database recording runs (empty disables history)")
	fs.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")
	fs.Int("max-line-bytes", config.DefaultMaxLineBytes, "Longest accepted input line in bytes")
}

// resolveSettings loads the config file named by --config and applies the
// flags the user set on top of it.
func resolveSettings(fs *pflag.FlagSet) (config.Settings, error) {
	path, err := fs.GetString("config")
	if err != nil {
		return config.Settings{}, err
	}
	settings, err := config.Load(path)
	if err != nil {
		return config.Settings{}, err
	}
	if err := applyFlagOverrides(&settings, fs); err != nil {
		return config.Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

// applyFlagOverrides copies explicitly set flags into s.
func applyFlagOverrides(s *config.Settings, fs *pflag.FlagSet) error {
	stringFlags := []struct {
		flag string
		dst  *string
	}{
		{"input", &s.Input},
		{"output", &s.Output},
		{"history", &s.History},
		{"log-level", &s.LogLevel},
	}
	for _, f := range stringFlags {
		if !fs.Changed(f.flag) {
			continue
		}
		val, err := fs.GetString(f.flag)
		if err != nil {
			return err
		}
		*f.dst = val
	}

	if fs.Changed("max-line-bytes") {
		val, err := fs.GetInt("max-line-bytes")
		if err != nil {
			return err
		}
		s.MaxLineBytes = val
	}
	return nil
}
