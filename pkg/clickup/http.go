package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Headers returns the headers attached to every request.
func (c *Client) Headers() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Accept-Encoding", "gzip, deflate")
	h.Set("Authorization", c.token)
	h.Set("User-Agent", c.userAgent)
	return h
}

// resolve joins path onto the base URL of the given API version.
func (c *Client) resolve(path string, version APIVersion) (string, error) {
	base, ok := c.apiURLs[version]
	if !ok {
		return "", newConfigurationError(fmt.Sprintf("unsupported api version %d", version))
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", newConfigurationError(fmt.Sprintf("invalid api url %q: %v", base, err))
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid request path %q: %w", path, err)
	}
	return baseURL.ResolveReference(ref).String(), nil
}

// newRequest creates a request with the standard headers and, when body is
// non-nil, a JSON payload.
func (c *Client) newRequest(ctx context.Context, method, path string, version APIVersion, body interface{}) (*http.Request, error) {
	reqURL, err := c.resolve(path, version)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = c.Headers()
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// Raw issues a request and returns the unparsed response. The caller must
// close the body. Only HTTP 429 is turned into an error; no JSON parsing is
// attempted and no retry is made.
func (c *Client) Raw(ctx context.Context, method, path string, version APIVersion, body interface{}) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, version, body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("request", "method", method, "url", req.URL.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, newRateLimitedError(req.URL.String())
	}

	return resp, nil
}

// Get issues a GET and returns the decoded JSON body: a
// map[string]interface{}, a []interface{}, a scalar, or nil for an empty
// body. Numbers are decoded as json.Number.
func (c *Client) Get(ctx context.Context, path string, version APIVersion) (interface{}, error) {
	return c.do(ctx, http.MethodGet, path, version, nil)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, version APIVersion, body interface{}) (interface{}, error) {
	return c.do(ctx, http.MethodPost, path, version, body)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, version APIVersion, body interface{}) (interface{}, error) {
	return c.do(ctx, http.MethodPut, path, version, body)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, version APIVersion) (interface{}, error) {
	return c.do(ctx, http.MethodDelete, path, version, nil)
}

func (c *Client) do(ctx context.Context, method, path string, version APIVersion, body interface{}) (interface{}, error) {
	resp, err := c.Raw(ctx, method, path, version, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseErrorResponse(resp)
	}

	data, err := readBody(resp)
	if err != nil {
		return nil, newRemoteError(resp.StatusCode, err.Error(), nil)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, newRemoteError(resp.StatusCode, fmt.Sprintf("failed to decode response: %v", err), nil)
	}
	return out, nil
}

// getObject is Get for endpoints that answer with a JSON object. ok is false
// when the body was something else.
func (c *Client) getObject(ctx context.Context, path string, version APIVersion) (map[string]interface{}, bool, error) {
	out, err := c.Get(ctx, path, version)
	if err != nil {
		return nil, false, err
	}
	obj, ok := out.(map[string]interface{})
	return obj, ok, nil
}

// readBody reads the response body, undoing the content encoding. The
// transport does not decompress for us because Accept-Encoding is set
// explicitly. Some servers send raw deflate streams without the zlib
// header, so both are accepted.
func readBody(resp *http.Response) ([]byte, error) {
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read gzip body: %w", err)
		}
		defer gz.Close()
		return io.ReadAll(gz)
	case "deflate":
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var r io.ReadCloser
		if zr, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			r = zr
		} else {
			r = flate.NewReader(bytes.NewReader(raw))
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read deflate body: %w", err)
		}
		return out, nil
	default:
		return io.ReadAll(resp.Body)
	}
}

// apiErrorResponse is the error body ClickUp sends with non-2xx statuses.
type apiErrorResponse struct {
	Err   string `json:"err"`
	ECode string `json:"ECODE"`
}

// parseErrorResponse turns a non-2xx response into a remote error.
func parseErrorResponse(resp *http.Response) error {
	body, err := readBody(resp)
	if err != nil {
		return newRemoteError(resp.StatusCode, fmt.Sprintf("failed to read error response: %v", err), nil)
	}

	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Err == "" {
		return newRemoteError(resp.StatusCode,
			fmt.Sprintf("%d %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	return newRemoteError(resp.StatusCode,
		fmt.Sprintf("%d %s", resp.StatusCode, apiErr.Err),
		map[string]interface{}{"ecode": apiErr.ECode})
}
