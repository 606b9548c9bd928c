package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
)

// Config carries client credentials and model selection.
type Config struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	SpeechModel    string
	SpeechVoice    string
	RequestTimeout time.Duration
}

// Client is a thin wrapper over the OpenAI REST API covering the two
// endpoints the portal proxies: chat completions and speech synthesis.
type Client struct {
	cfg  Config
	http *http.Client
}

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Temperature    float64         `json:"temperature"`
	Messages       []Message       `json:"messages"`
	ResponseFormat json.RawMessage `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type speechRequest struct {
	Model          string `json:"model"`
	Voice          string `json:"voice"`
	Input          string `json:"input"`
	ResponseFormat string `json:"response_format"`
}

// New builds a client. The API key may be empty; calls then fail with
// MISSING_API_KEY so the misconfiguration surfaces per request instead
// of at startup.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// ChatCompletion runs a chat completion and returns the first choice's
// content. responseFormat, when non-nil, is passed through verbatim
// (used for JSON-schema constrained outputs).
func (c *Client) ChatCompletion(ctx context.Context, temperature float64, messages []Message, responseFormat json.RawMessage) (string, error) {
	if !c.Configured() {
		return "", appErrors.ErrMissingAPIKey
	}

	payload := chatRequest{
		Model:          c.cfg.ChatModel,
		Temperature:    temperature,
		Messages:       messages,
		ResponseFormat: responseFormat,
	}

	resp, err := c.post(ctx, "/chat/completions", payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", c.upstreamError(resp)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", appErrors.Wrap(err, "UPSTREAM_INVALID_RESPONSE", http.StatusBadGateway, "OpenAI returned invalid JSON")
	}
	if len(decoded.Choices) == 0 {
		return "", appErrors.New("UPSTREAM_INVALID_RESPONSE", http.StatusBadGateway, "OpenAI returned no choices")
	}
	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}

// Speech synthesizes speech for the given input and returns raw mp3 bytes.
func (c *Client) Speech(ctx context.Context, input string) ([]byte, error) {
	if !c.Configured() {
		return nil, appErrors.ErrMissingAPIKey
	}

	payload := speechRequest{
		Model:          c.cfg.SpeechModel,
		Voice:          c.cfg.SpeechVoice,
		Input:          input,
		ResponseFormat: "mp3",
	}

	resp, err := c.post(ctx, "/audio/speech", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, c.upstreamError(resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, "UPSTREAM_INVALID_RESPONSE", http.StatusBadGateway, "failed to read OpenAI audio stream")
	}
	if len(audio) == 0 {
		return nil, appErrors.New("UPSTREAM_INVALID_RESPONSE", http.StatusBadGateway, "OpenAI returned empty audio")
	}
	return audio, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode OpenAI request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build OpenAI request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, "UPSTREAM_UNAVAILABLE", http.StatusBadGateway, "OpenAI request failed")
	}
	return resp, nil
}

// upstreamError maps a non-200 response onto the shared error
// taxonomy. The upstream message and request id are preserved so the
// client can show actionable diagnostics without leaking the API key.
func (c *Client) upstreamError(resp *http.Response) *appErrors.Error {
	requestID := resp.Header.Get("x-request-id")
	upstreamMessage := readUpstreamMessage(resp)
	details := map[string]interface{}{"upstreamMessage": upstreamMessage}

	var appErr *appErrors.Error
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		appErr = appErrors.New("UPSTREAM_RATE_LIMIT", http.StatusTooManyRequests, "OpenAI rate limit reached, retry later")
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		appErr = appErrors.New("UPSTREAM_AUTH_ERROR", http.StatusBadGateway, "upstream authentication failed")
	case resp.StatusCode >= http.StatusInternalServerError:
		appErr = appErrors.New("UPSTREAM_UNAVAILABLE", http.StatusBadGateway, "OpenAI service is temporarily unavailable")
	default:
		appErr = appErrors.New("UPSTREAM_ERROR", http.StatusBadGateway, "OpenAI request failed")
	}

	appErr.Details = details
	if requestID != "" {
		appErr.RequestID = &requestID
	}
	return appErr
}

func readUpstreamMessage(resp *http.Response) string {
	contentType := resp.Header.Get("Content-Type")
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if err != nil || len(raw) == 0 {
		return "OpenAI request failed."
	}

	if strings.Contains(contentType, "application/json") {
		var parsed struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error.Message != "" {
			return parsed.Error.Message
		}
	}
	return string(bytes.TrimSpace(raw))
}
