// internal/gateway/http.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPGateway submits messages to an external SMS gateway over JSON.
type HTTPGateway struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		BaseURL: baseURL,
		APIKey:  apiKey,
		// Per-send deadlines come from the caller's context.
		Client: &http.Client{},
	}
}

type sendRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

func (g *HTTPGateway) Send(ctx context.Context, to, senderName, body string) error {
	payload, err := json.Marshal(sendRequest{To: to, From: senderName, Message: body})
	if err != nil {
		return fmt.Errorf("encode send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.APIKey)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, snippet)
	}
	return nil
}

var _ Gateway = (*HTTPGateway)(nil)
