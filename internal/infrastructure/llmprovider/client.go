package llmprovider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/namestorm/server/internal/domain/llm"
	"github.com/namestorm/server/internal/domain/retry"
)

// Client implements the llm.Provider interface against an OpenAI-compatible
// chat completions endpoint.
type Client struct {
	httpClient *resty.Client
	policy     retry.Policy
}

// NewClient creates a Resty-backed client. The API key is attached as a
// bearer token on every request.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetAuthToken(apiKey).
			SetTimeout(75 * time.Second),
		policy: retry.DefaultPolicy(),
	}
}

// CreateChatCompletion calls /v1/chat/completions. Transport failures are
// retried with backoff; any HTTP response, 2xx or not, ends the attempt
// loop. A non-2xx status is surfaced to the caller as a single error.
func (c *Client) CreateChatCompletion(ctx context.Context, req llm.ChatCompletionRequest) (*llm.ChatCompletionResponse, error) {
	return retry.ExecuteWithResult(ctx, c.policy, func(ctx context.Context, attempt int) (*llm.ChatCompletionResponse, error) {
		var completion llm.ChatCompletionResponse
		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&completion).
			Post("/v1/chat/completions")
		if err != nil {
			return nil, retry.Transient{Err: err}
		}

		if resp.IsError() {
			return nil, fmt.Errorf("gateway error (%d): %s", resp.StatusCode(), resp.String())
		}
		return &completion, nil
	})
}

// Ensure interface compliance.
var _ llm.Provider = (*Client)(nil)
