package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables read by FromEnv.
const (
	EnvToken    = "CLICKUP_TOKEN"
	EnvAPIURL   = "CLICKUP_API_URL"
	EnvAPIV2URL = "CLICKUP_API_V2_URL"
	EnvDebug    = "CLICKUP_DEBUG"
)

// Built-in defaults.
const (
	DefaultAPIURL   = "https://api.clickup.com/api/v1/"
	DefaultAPIV2URL = "https://api.clickup.com/api/v2/"
	DefaultOutput   = FormatTable
)

// ResolvedConfig represents the final merged configuration with all
// precedence rules applied. Precedence order (highest to lowest):
// 1. Flags
// 2. Environment (CLICKUP_TOKEN, CLICKUP_API_URL, CLICKUP_API_V2_URL)
// 3. Project config (clickup.toml)
// 4. Global config (~/.clickup/config.toml)
// 5. Built-in defaults
type ResolvedConfig struct {
	Token     string
	APIURL    string
	APIV2URL  string
	UserAgent string
	Cache     bool
	Debug     bool
	// Timeout of 0 means no timeout.
	Timeout time.Duration
	Output  string

	// ProjectFile is the clickup.toml that was applied, if any.
	ProjectFile string
}

// ResolveOptions points resolution at explicit directories and sources.
// Empty fields use the real home directory, working directory and process
// environment.
type ResolveOptions struct {
	HomeDir   string
	WorkDir   string
	LookupEnv func(string) (string, bool)
	Flags     Settings
}

// ResolveConfig loads every layer from the real environment and merges
// them with flags on top.
func ResolveConfig(flags Settings) (*ResolvedConfig, error) {
	return Resolve(ResolveOptions{Flags: flags})
}

// Resolve loads and merges every layer according to precedence rules.
func Resolve(opts ResolveOptions) (*ResolvedConfig, error) {
	homeDir := opts.HomeDir
	if homeDir == "" {
		var err error
		if homeDir, err = os.UserHomeDir(); err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
	}
	workDir := opts.WorkDir
	if workDir == "" {
		var err error
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	// Step 1: Load global config (optional, errors are not ignored for invalid files)
	globalCfg, err := LoadGlobalConfigFromDir(homeDir)
	if err != nil {
		return nil, err
	}

	// Step 2: Discover project config (optional)
	projectCfg, projectFile, err := DiscoverProjectConfigFrom(workDir)
	if err != nil {
		return nil, err
	}

	// Step 3: Environment
	envCfg, err := FromEnv(lookup)
	if err != nil {
		return nil, err
	}

	if err := validateOutput(opts.Flags.Output); err != nil {
		return nil, err
	}

	// Step 4: Merge with precedence (defaults -> global -> project -> env -> flags)
	resolved := &ResolvedConfig{
		APIURL:      DefaultAPIURL,
		APIV2URL:    DefaultAPIV2URL,
		Cache:       true,
		Output:      DefaultOutput,
		ProjectFile: projectFile,
	}
	for _, layer := range []*Settings{globalCfg, projectCfg, envCfg, &opts.Flags} {
		resolved.apply(layer)
	}

	return resolved, nil
}

// FromEnv reads the environment layer.
func FromEnv(lookup func(string) (string, bool)) (*Settings, error) {
	s := &Settings{}
	if v, ok := lookup(EnvToken); ok {
		s.Token = v
	}
	if v, ok := lookup(EnvAPIURL); ok {
		s.APIURL = v
	}
	if v, ok := lookup(EnvAPIV2URL); ok {
		s.APIV2URL = v
	}
	if v, ok := lookup(EnvDebug); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvDebug, v, err)
		}
		s.Debug = &debug
	}
	return s, nil
}

func (r *ResolvedConfig) apply(s *Settings) {
	if s == nil {
		return
	}
	if s.Token != "" {
		r.Token = s.Token
	}
	if s.APIURL != "" {
		r.APIURL = s.APIURL
	}
	if s.APIV2URL != "" {
		r.APIV2URL = s.APIV2URL
	}
	if s.UserAgent != "" {
		r.UserAgent = s.UserAgent
	}
	if s.Cache != nil {
		r.Cache = *s.Cache
	}
	if s.Debug != nil {
		r.Debug = *s.Debug
	}
	if s.Timeout != nil {
		r.Timeout = *s.Timeout
	}
	if s.Output != "" {
		r.Output = s.Output
	}
}
