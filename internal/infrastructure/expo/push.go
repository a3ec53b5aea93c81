package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/elastiquality/notify-api/internal/config"
)

// maxBatchSize is the gateway's per-request ceiling on messages.
const maxBatchSize = 99

// Client talks to an Expo-compatible push gateway.
type Client struct {
	url         string
	accessToken string
	httpClient  *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		url:         cfg.PushGatewayURL,
		accessToken: cfg.PushAccessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// pushMessage is one entry in a gateway batch.
type pushMessage struct {
	To    string                 `json:"to"`
	Sound string                 `json:"sound"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// SendPush delivers title/body/data to every token, batching at most
// maxBatchSize per gateway call and dispatching batches concurrently.
// A rejected batch is logged and does not block the others; there is no
// retry. Zero tokens is a no-op.
func (c *Client) SendPush(ctx context.Context, tokens []string, title, body string, data map[string]interface{}) error {
	if len(tokens) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	for start := 0; start < len(tokens); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(tokens) {
			end = len(tokens)
		}
		wg.Add(1)
		go func(batch []string) {
			defer wg.Done()
			if err := c.sendBatch(ctx, batch, title, body, data); err != nil {
				slog.Warn("push batch failed", "tokens", len(batch), "err", err)
			}
		}(tokens[start:end])
	}
	wg.Wait()
	return nil
}

func (c *Client) sendBatch(ctx context.Context, batch []string, title, body string, data map[string]interface{}) error {
	messages := make([]pushMessage, len(batch))
	for i, token := range batch {
		messages[i] = pushMessage{
			To:    token,
			Sound: "default",
			Title: title,
			Body:  body,
			Data:  data,
		}
	}
	payload, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		// Per-token errors inside a 200 response are not parsed; only
		// whole-batch rejection is surfaced.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}
