// Package config reads bbsbbu.toml, the optional defaults file for
// batch runs over many .nmr files so the -tmax and -clean_log flags
// don't need to be repeated on every invocation.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the defaults bbsbbu.toml may supply. CLI flags always
// take precedence over these values.
type Config struct {
	TmaxSeconds float64 `toml:"tmax"`
	CleanLog    bool    `toml:"clean_log"`
}

// Load reads and parses path. A missing file is not an error: it
// returns the zero Config, letting callers fall back to built-in
// defaults.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
