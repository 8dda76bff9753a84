package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Output formats accepted in [output] format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Settings is one configuration layer. Zero values and nil pointers mean
// "not set here" so a lower layer shows through.
type Settings struct {
	Token     string
	APIURL    string
	APIV2URL  string
	UserAgent string
	Cache     *bool
	Debug     *bool
	Timeout   *time.Duration
	Output    string
}

// fileConfig is the raw TOML structure shared by the global and project
// files.
type fileConfig struct {
	API    apiSection    `toml:"api"`
	Client clientSection `toml:"client"`
	Output outputSection `toml:"output"`
}

type apiSection struct {
	Token     string `toml:"token"`
	URL       string `toml:"url"`
	V2URL     string `toml:"v2_url"`
	UserAgent string `toml:"user_agent"`
}

type clientSection struct {
	Cache   *bool  `toml:"cache"`
	Debug   *bool  `toml:"debug"`
	Timeout string `toml:"timeout"`
}

type outputSection struct {
	Format string `toml:"format"`
}

// parseFile reads a TOML config file into Settings.
func parseFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw fileConfig
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML in %s: %w", path, err)
	}

	s := &Settings{
		Token:     raw.API.Token,
		APIURL:    raw.API.URL,
		APIV2URL:  raw.API.V2URL,
		UserAgent: raw.API.UserAgent,
		Cache:     raw.Client.Cache,
		Debug:     raw.Client.Debug,
		Output:    raw.Output.Format,
	}

	if raw.Client.Timeout != "" {
		d, err := time.ParseDuration(raw.Client.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q in %s: %w", raw.Client.Timeout, path, err)
		}
		s.Timeout = &d
	}

	if err := validateOutput(s.Output); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// validateOutput checks the output format; empty is allowed.
func validateOutput(format string) error {
	switch format {
	case "", FormatTable, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("invalid output format %q: must be table, json or yaml", format)
}
