// Package translate talks to a LibreTranslate-compatible HTTP API to
// translate captured words and build example sentences for them.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"vocam/internal/domain"
)

const sourceLanguage = "en"

// Client is a translation provider backed by a LibreTranslate server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	retryDelay time.Duration
}

// NewClient creates a Client for the server at baseURL.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(zap.String("adapter", "translate")),
		retryDelay: 500 * time.Millisecond,
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

// Translate returns the translation of an English word into lang.
func (c *Client) Translate(ctx context.Context, word, lang string) (string, error) {
	return c.translate(ctx, word, lang)
}

// ExampleSentence builds an English example sentence for word and translates
// it into lang.
func (c *Client) ExampleSentence(ctx context.Context, word, lang string) (domain.Example, error) {
	english := exampleFor(word)
	translated, err := c.translate(ctx, english, lang)
	if err != nil {
		return domain.Example{}, err
	}
	return domain.Example{Translated: translated, English: english}, nil
}

func (c *Client) translate(ctx context.Context, text, lang string) (string, error) {
	body, err := json.Marshal(translateRequest{
		Q:      text,
		Source: sourceLanguage,
		Target: lang,
		Format: "text",
		APIKey: c.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("translate: encode request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, body, text)
	if err != nil {
		return "", fmt.Errorf("translate: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("translate: read body: %w", err)
	}

	var out translateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("translate: decode json: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return "", fmt.Errorf("translate: status %d: %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("translate: unexpected status %d", resp.StatusCode)
	}

	c.logger.Debug("translate response",
		zap.String("text", text),
		zap.String("target", lang),
	)
	return strings.TrimSpace(out.TranslatedText), nil
}

// doWithRetry posts the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, body []byte, text string) (*http.Response, error) {
	resp, err := c.post(ctx, body)

	shouldRetry := err != nil || resp.StatusCode >= 500
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	c.logger.Warn("translate retry", zap.String("text", text), zap.String("reason", reason))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.retryDelay):
	}

	return c.post(ctx, body)
}

func (c *Client) post(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}
