/*
Package config loads linefmt run settings from YAML or JSON files.

# Overview

A settings file is a flat mapping. Every key is optional; missing keys keep
the defaults that reproduce the fixed generator (test.txt in,
test-python.txt out):

	input: test.txt
	output: test-python.txt
	log_level: info
	history: runs.db
	max_line_bytes: 1048576

# Basic Usage

	s, err := config.Load("linefmt.yaml")
	if err != nil {
	    return err
	}
	fmt.Println(s.Input, s.Output)

Load with an empty path returns Defaults().

# Sources

ReadFile returns a Source: the decoded keys plus, for YAML, the line each key
was set on. Errors about a key name its position, so a typo reads as

	unknown config key: inptu (linefmt.yaml:2)

Values must be scalars. Nested mappings and lists are rejected.
*/
package config
