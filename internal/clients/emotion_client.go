package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spacesedan/emotiflow/internal/models"
)

const (
	analyzeEndpoint  = "/analyze"
	selfTestEndpoint = "/test"
)

// APIError is returned for 4xx/5xx responses that carry an error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("emotion service returned %d: %s", e.StatusCode, e.Message)
}

type EmotionClient struct {
	Client         *http.Client
	BaseURL        string
	MaxRetries     int
	InitialBackoff time.Duration
}

func NewEmotionClient(baseURL string, timeout time.Duration) *EmotionClient {
	if baseURL == "" {
		baseURL = DEFAULT_BASE_URL
	}
	slog.Info("[EmotionClient] Initializing Client",
		slog.String("base_url", baseURL),
		slog.Duration("timeout", timeout))

	return &EmotionClient{
		Client:         &http.Client{Timeout: timeout},
		BaseURL:        strings.TrimRight(baseURL, "/"),
		MaxRetries:     MAX_RETRIES,
		InitialBackoff: INITIAL_BACKOFF,
	}
}

func (e *EmotionClient) Analyze(ctx context.Context, text string) (models.AnalyzeResponse, error) {
	var result models.AnalyzeResponse
	start := time.Now()

	err := e.doJSON(ctx, http.MethodPost, analyzeEndpoint, models.AnalyzeRequest{Text: text}, &result)
	if err != nil {
		slog.Error("[EmotionClient] Analyze request failed",
			slog.Duration("elapsed", time.Since(start)))
		return result, err
	}

	slog.Info("[EmotionClient] Analyze request successful",
		slog.String("emotion", string(result.Emotion)),
		slog.Int("confidence", result.Confidence),
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

func (e *EmotionClient) SelfTest(ctx context.Context) (models.SelfTestResponse, error) {
	var result models.SelfTestResponse
	start := time.Now()

	if err := e.doJSON(ctx, http.MethodGet, selfTestEndpoint, nil, &result); err != nil {
		slog.Error("[EmotionClient] Self test request failed",
			slog.Duration("elapsed", time.Since(start)))
		return result, err
	}

	slog.Info("[EmotionClient] Self test request successful",
		slog.Int("results", len(result.TestResults)),
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

// DoWithRetry retries transport errors and 5xx responses with exponential
// backoff. The request is rebuilt for every attempt so the body can be resent.
func (e *EmotionClient) DoWithRetry(ctx context.Context, newReq func() (*http.Request, error)) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := e.InitialBackoff
	attempts := max(e.MaxRetries, 1)

	for attempt := 0; attempt < attempts; attempt++ {
		var req *http.Request
		req, err = newReq()
		if err != nil {
			return nil, err
		}

		resp, err = e.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}
		if attempt == attempts-1 {
			break
		}

		if resp != nil {
			resp.Body.Close()
		}

		slog.Warn("[EmotionClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, MAX_BACKOFF)
	}

	return resp, err
}

func (e *EmotionClient) doJSON(ctx context.Context, method, endpoint string, input any, output any) error {
	var body []byte
	if input != nil {
		var err error
		body, err = json.Marshal(input)
		if err != nil {
			slog.Error("[EmotionClient] Failed to marshal input",
				slog.String("endpoint", endpoint),
				slog.String("error", err.Error()))
			return fmt.Errorf("failed to marshal input: %w", err)
		}
	}

	url := e.BaseURL + endpoint
	newReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		if input != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("User-Agent", USER_AGENT)
		return req, nil
	}

	resp, err := e.DoWithRetry(ctx, newReq)
	if err != nil {
		slog.Error("[EmotionClient] Failed request after retries",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr models.ErrorResponse
		if err := json.Unmarshal(respBody, &apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = getPreview(respBody)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[EmotionClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			slog.String("raw_response", getPreview(respBody)),
			slog.Int("raw_response_length", len(respBody)))
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

func getPreview(respBody []byte) string {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return raw
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
