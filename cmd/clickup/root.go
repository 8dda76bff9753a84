package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/goclickup/goclickup/internal/config"
	"github.com/goclickup/goclickup/internal/logging"
	"github.com/goclickup/goclickup/pkg/clickup"
)

// app carries the state shared by every command of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// resolve locates the config layers; tests point it at temp dirs.
	resolve config.ResolveOptions

	token     string
	apiURL    string
	apiV2URL  string
	userAgent string
	output    string
	debug     bool
	noCache   bool
	timeout   time.Duration

	cfg *config.ResolvedConfig
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

// configError marks failures to load or validate configuration.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "clickup",
		Short: "ClickUp API client",
		Long: `A command line client for the ClickUp API.

Configuration is read from ~/.clickup/config.toml, then clickup.toml found
in the current directory or a parent, then CLICKUP_TOKEN, CLICKUP_API_URL,
CLICKUP_API_V2_URL and CLICKUP_DEBUG, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.token, "token", "", "API token")
	flags.StringVar(&a.apiURL, "api-url", "", "v1 API base URL")
	flags.StringVar(&a.apiV2URL, "api-v2-url", "", "v2 API base URL")
	flags.StringVar(&a.userAgent, "user-agent", "", "User-Agent header")
	flags.StringVarP(&a.output, "output", "o", "", "Output format: table, json or yaml")
	flags.BoolVar(&a.debug, "debug", false, "Log every request to stderr")
	flags.BoolVar(&a.noCache, "no-cache", false, "Always refetch collections")
	flags.DurationVar(&a.timeout, "timeout", 0, "HTTP timeout (0 for none)")

	root.AddCommand(
		newUserCmd(a),
		newTeamsCmd(a),
		newSpacesCmd(a),
		newProjectsCmd(a),
		newListsCmd(a),
		newListCmd(a),
		newTasksCmd(a),
		newTaskCmd(a),
		newCommentsCmd(a),
		newCommentCmd(a),
		newSnapshotCmd(a),
	)
	return root
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, a *app, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		a.printError(err)
		return exitCode(err)
	}
	return ExitSuccess
}

// loadConfig resolves every config layer, with explicitly set flags on top.
func (a *app) loadConfig(cmd *cobra.Command) error {
	flags := cmd.Flags()
	s := config.Settings{
		Token:     a.token,
		APIURL:    a.apiURL,
		APIV2URL:  a.apiV2URL,
		UserAgent: a.userAgent,
		Output:    a.output,
	}
	if flags.Changed("debug") {
		s.Debug = &a.debug
	}
	if flags.Changed("no-cache") {
		cache := !a.noCache
		s.Cache = &cache
	}
	if flags.Changed("timeout") {
		s.Timeout = &a.timeout
	}

	opts := a.resolve
	opts.Flags = s
	cfg, err := config.Resolve(opts)
	if err != nil {
		return &configError{err: err}
	}
	a.cfg = cfg
	return nil
}

// client builds an SDK client from the resolved configuration.
func (a *app) client() (*clickup.Client, error) {
	opts := []clickup.ClientOption{
		clickup.WithAPIURL(a.cfg.APIURL),
		clickup.WithAPIV2URL(a.cfg.APIV2URL),
		clickup.WithCache(a.cfg.Cache),
	}
	if a.cfg.UserAgent != "" {
		opts = append(opts, clickup.WithUserAgent(a.cfg.UserAgent))
	}
	if a.cfg.Timeout > 0 {
		opts = append(opts, clickup.WithTimeout(a.cfg.Timeout))
	}
	if a.cfg.Debug {
		opts = append(opts, clickup.WithDebug(true), clickup.WithLogger(logging.Debug(a.stderr)))
	}
	return clickup.NewClient(a.cfg.Token, opts...)
}

func (a *app) printer() printer {
	format := config.DefaultOutput
	if a.cfg != nil {
		format = a.cfg.Output
	}
	return printer{w: a.stdout, format: format}
}

func (a *app) printError(err error) {
	p := a.printer()
	p.w = a.stderr
	p.printError(err)
}

// exitCode maps an error to the appropriate exit code
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}

	var apiErr *clickup.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case clickup.ErrCodeConfiguration:
			return ExitConfigError
		case clickup.ErrCodeLookupFailure:
			return ExitNotFound
		case clickup.ErrCodeRateLimited:
			return ExitRateLimited
		case clickup.ErrCodeInvalidArgument:
			return ExitInvalidArgument
		case clickup.ErrCodeRemote:
			if apiErr.StatusCode == http.StatusNotFound {
				return ExitNotFound
			}
			return ExitRemoteError
		}
	}

	return ExitGeneralError
}

// errNotDeleted is returned when a delete call reports failure.
func errNotDeleted(kind, id string) error {
	return fmt.Errorf("%s %s was not deleted", kind, id)
}
