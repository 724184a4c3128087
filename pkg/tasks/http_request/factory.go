package http_request

import "github.com/flowkit/flowkit/pkg/models"

func NewHTTPRequestTaskFactory() *HTTPRequestTaskFactory {
	return &HTTPRequestTaskFactory{}
}

type HTTPRequestTaskFactory struct{}

func (*HTTPRequestTaskFactory) ID() string {
	return "http_request"
}

func (*HTTPRequestTaskFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": "Request URL. Overridable at dispatch time by a resolved 'url' input.",
			},
			"method": map[string]any{
				"type":        "string",
				"description": "HTTP method",
				"default":     "GET",
				"enum":        []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD"},
			},
			"headers": map[string]any{
				"type":        "object",
				"description": "Request headers",
			},
			"body": map[string]any{
				"type":        "string",
				"description": "Request body. Overridable by a resolved 'body' input.",
			},
			"timeout": map[string]any{
				"type":        "number",
				"description": "Request timeout in seconds",
				"default":     30,
			},
		},
		"required": []string{"url"},
	}
}

func (f *HTTPRequestTaskFactory) Create(config map[string]any) (models.TaskExecutor, error) {
	if config == nil {
		config = map[string]any{}
	}

	task, err := NewHTTPRequestTask(config)
	if err != nil {
		return nil, err
	}

	return task.Executor(), nil
}
