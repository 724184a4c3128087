// Package http_request provides a built-in task executor performing an HTTP
// request and exposing the response as task outputs.
package http_request

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flowkit/flowkit/pkg/models"
)

const defaultTimeout = 30 * time.Second

type HTTPRequestTask struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    string
	Timeout time.Duration

	client *http.Client
}

func NewHTTPRequestTask(config map[string]any) (*HTTPRequestTask, error) {
	method, _ := config["method"].(string)
	url, _ := config["url"].(string)
	body, _ := config["body"].(string)

	if url == "" {
		return nil, fmt.Errorf("http_request task requires a url")
	}

	if method == "" {
		method = http.MethodGet
	}

	headers := make(map[string]string)

	if headersConfig, exists := config["headers"]; exists {
		headersMap, ok := headersConfig.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("http_request headers must be a map, got %T", headersConfig)
		}

		for k, v := range headersMap {
			if strVal, ok := v.(string); ok {
				headers[k] = strVal
			}
		}
	}

	timeout := defaultTimeout
	if seconds, ok := config["timeout"].(float64); ok && seconds > 0 {
		timeout = time.Duration(seconds) * time.Second
	}

	return &HTTPRequestTask{
		Method:  strings.ToUpper(method),
		URL:     url,
		Headers: headers,
		Body:    body,
		Timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Executor returns the task body. The resolved input "url" overrides the
// configured URL, and "body" overrides the configured body, so a prior
// component can feed the request target dynamically.
func (t *HTTPRequestTask) Executor() models.TaskExecutor {
	return func(ctx context.Context, inputs map[string]any) (map[string]any, error) {
		url := t.URL
		if override, ok := inputs["url"].(string); ok && override != "" {
			url = override
		}

		body := t.Body
		if override, ok := inputs["body"].(string); ok && override != "" {
			body = override
		}

		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, t.Method, url, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s request to %s: %w", t.Method, url, err)
		}

		for k, v := range t.Headers {
			req.Header.Set(k, v)
		}

		resp, err := t.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request to %s failed: %w", url, err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
		}

		outputs := map[string]any{
			"status_code": resp.StatusCode,
			"body":        string(raw),
		}

		if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
			var parsed any
			if err := json.Unmarshal(raw, &parsed); err == nil {
				outputs["json"] = parsed
			}
		}

		return outputs, nil
	}
}
