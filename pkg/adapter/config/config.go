// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the mysite to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// Optional settings are kept as pointers, so missing items can be
// detected and filled by their defaults in ValidateAndNormalize.
// Parsed settings are passed to their ultimate components as
// individual params and functional options, so the use cases layer
// stays independent of the configuration format.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable which may hold the config
// file path when it is not given as a command line flag.
const EnvVar = "CONFIG_FILE"

// DefaultPath is the config file path which is used when neither the
// command line flag nor the EnvVar environment variable is set.
const DefaultPath = "configs/sample-config.yaml"

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is implemented
// with primitive fields or locally defined structs, not the models
// of lower layers, so the file format may stay intact while other
// layers change freely.
type Config struct {
	Database Database // PostgreSQL or in-memory database settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Server   Server   // HTTP server settings
	Log      Log      // Default logger settings
	Blog     Blog     // Blog resources rendering settings
}

// ResolvePath chooses the config file path. A non-empty flag value is
// preferred, then the EnvVar environment variable, and at last, the
// DefaultPath.
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(EnvVar); p != "" {
		return p
	}
	return DefaultPath
}

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return c, nil
}

// Parse unmarshals the data byte slice and returns a validated and
// normalized Config instance. Unknown items are rejected, so typos
// in the settings names may not go unnoticed, and missing items take
// their default values.
func Parse(data []byte) (*Config, error) {
	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)
	c := &Config{}
	switch err := d.Decode(c); {
	case errors.Is(err, io.EOF):
		return nil, errors.New("empty config document")
	case err != nil:
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It also replaces the
// missing settings with their default values.
func (c *Config) ValidateAndNormalize() error {
	var errs []error
	if err := c.Database.ValidateAndNormalize(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}
	if err := c.Gin.ValidateAndNormalize(); err != nil {
		errs = append(errs, fmt.Errorf("gin: %w", err))
	}
	if err := c.Server.ValidateAndNormalize(); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}
	if err := c.Log.ValidateAndNormalize(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}
	if err := c.Blog.ValidateAndNormalize(); err != nil {
		errs = append(errs, fmt.Errorf("blog: %w", err))
	}
	return errors.Join(errs...)
}
