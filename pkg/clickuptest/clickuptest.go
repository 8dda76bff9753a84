package clickuptest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/goclickup/goclickup/internal/api"
	"github.com/goclickup/goclickup/internal/api/middleware"
	"github.com/goclickup/goclickup/internal/store"
)

// DefaultToken is the token a Server accepts unless WithToken is used.
const DefaultToken = "pk_test_token"

// Server is a fake ClickUp API serving the sample workspace.
type Server struct {
	token    string
	ws       *store.Workspace
	recorder *middleware.Recorder
	limiter  *middleware.RateLimiter
	handler  http.Handler
	httpSrv  *httptest.Server
}

type config struct {
	token    string
	logger   *slog.Logger
	pageSize int
	compress bool
}

// Option configures a Server.
type Option func(*config)

// WithToken sets the only accepted token. An empty token accepts any
// non-empty Authorization header.
func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithPageSize sets the number of tasks per page of team/{id}/task.
func WithPageSize(n int) Option {
	return func(c *config) {
		c.pageSize = n
	}
}

// WithLogger sends request logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithoutCompression disables gzip/deflate response encoding.
func WithoutCompression() Option {
	return func(c *config) {
		c.compress = false
	}
}

// New creates a Server without listening. Use Handler to mount it.
func New(opts ...Option) *Server {
	cfg := &config{token: DefaultToken, compress: true}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Server{
		token:    cfg.token,
		ws:       store.NewFixture(),
		recorder: middleware.NewRecorder(),
		limiter:  middleware.NewRateLimiter(),
	}
	s.handler = api.NewRouter(s.ws, api.Options{
		Token:    cfg.token,
		Logger:   cfg.logger,
		PageSize: cfg.pageSize,
		Compress: cfg.compress,
		Recorder: s.recorder,
		Limiter:  s.limiter,
	})
	return s
}

// Start creates a Server listening on a local port. It is closed when the
// test completes.
func Start(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := New(opts...)
	s.httpSrv = httptest.NewServer(s.handler)
	t.Cleanup(s.Close)
	return s
}

// Close stops the listener started by Start.
func (s *Server) Close() {
	if s.httpSrv != nil {
		s.httpSrv.Close()
	}
}

// Handler returns the fake API as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// URL returns the base URL of a started server.
func (s *Server) URL() string {
	if s.httpSrv == nil {
		return ""
	}
	return s.httpSrv.URL
}

// V1URL returns the v1 API base URL, with a trailing slash.
func (s *Server) V1URL() string {
	return s.URL() + "/api/v1/"
}

// V2URL returns the v2 API base URL, with a trailing slash.
func (s *Server) V2URL() string {
	return s.URL() + "/api/v2/"
}

// Token returns the accepted token.
func (s *Server) Token() string {
	if s.token == "" {
		return DefaultToken
	}
	return s.token
}

// Workspace exposes the server's data for direct inspection.
func (s *Server) Workspace() *store.Workspace {
	return s.ws
}

// SetRateLimited makes every following request fail with 429, or stops
// doing so.
func (s *Server) SetRateLimited(limited bool) {
	s.limiter.SetLimited(limited)
}

// LimitAfter serves n more requests, then answers 429.
func (s *Server) LimitAfter(n int) {
	s.limiter.LimitAfter(n)
}

// Request is a request as the server received it.
type Request struct {
	Method string
	// Path is the URL path, including the /api/v1 or /api/v2 prefix.
	Path        string
	QueryString string
	Headers     http.Header
	Body        string
}

// Requests returns every request received so far, oldest first.
func (s *Server) Requests() []Request {
	recorded := s.recorder.Requests()
	out := make([]Request, len(recorded))
	for i, r := range recorded {
		out[i] = Request{
			Method:      r.Method,
			Path:        r.Path,
			QueryString: r.RawQuery,
			Headers:     r.Header,
			Body:        string(r.Body),
		}
	}
	return out
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (Request, bool) {
	reqs := s.Requests()
	if len(reqs) == 0 {
		return Request{}, false
	}
	return reqs[len(reqs)-1], true
}

// ResetRequests forgets the recorded requests.
func (s *Server) ResetRequests() {
	s.recorder.Reset()
}

// AssertJSONBody asserts that the request body is JSON equal to expected.
// The expected value can be a string, []byte, or any value that will be JSON
// encoded.
func (r Request) AssertJSONBody(t testing.TB, expected any) {
	t.Helper()

	var expectedJSON, actualJSON any

	var raw []byte
	switch v := expected.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			t.Errorf("failed to marshal expected value: %v", err)
			return
		}
		raw = data
	}
	if err := json.Unmarshal(raw, &expectedJSON); err != nil {
		t.Errorf("failed to parse expected JSON: %v", err)
		return
	}

	if err := json.Unmarshal([]byte(r.Body), &actualJSON); err != nil {
		t.Errorf("request body is not valid JSON: %v\nbody: %s", err, r.Body)
		return
	}

	if !reflect.DeepEqual(actualJSON, expectedJSON) {
		expectedBytes, _ := json.MarshalIndent(expectedJSON, "", "  ")
		actualBytes, _ := json.MarshalIndent(actualJSON, "", "  ")
		t.Errorf("request body does not match expected JSON\nexpected:\n%s\nactual:\n%s",
			string(expectedBytes), string(actualBytes))
	}
}

// AssertHeader asserts that the request carried header key with value
// expected.
func (r Request) AssertHeader(t testing.TB, key, expected string) {
	t.Helper()

	values, ok := r.Headers[http.CanonicalHeaderKey(key)]
	if !ok {
		t.Errorf("request does not have header %q", key)
		return
	}
	if actual := strings.Join(values, ", "); actual != expected {
		t.Errorf("header %q value mismatch\nexpected: %q\nactual: %q", key, expected, actual)
	}
}
