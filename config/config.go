// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config assembles the command configuration from the packaged
// defaults, an optional YAML file, an optional dotenv file and the
// environment, in that order of precedence.
package config

import (
	"bytes"
	"os"

	"github.com/devblok/koruwsi/core"
	"github.com/gobuffalo/packr"
)

// Resources holds the packaged default configuration.
var Resources = packr.NewBox("./resources")

// DefaultFile is the name of the packaged configuration.
const DefaultFile = "koru.yaml"

// Load builds the configuration. Empty paths are skipped.
func Load(path, envFile string) (core.Configuration, error) {
	data, err := Resources.Find(DefaultFile)
	if err != nil {
		return core.Configuration{}, err
	}
	cfg, err := core.LoadConfiguration(bytes.NewReader(data))
	if err != nil {
		return cfg, err
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		if cfg, err = core.LoadConfigurationOver(cfg, f); err != nil {
			return cfg, err
		}
	}

	if envFile != "" {
		if err := core.LoadEnvFile(envFile); err != nil {
			return cfg, err
		}
	}
	if err := core.ApplyEnvironment(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
