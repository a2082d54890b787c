package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RetrievalClient queries a retrieval service that answers over the indexed
// source content of a tenant.
type RetrievalClient struct {
	BaseURL string
	Client  *http.Client
	query   QueryFunc
}

func NewRetrievalClient(baseURL string, query QueryFunc) *RetrievalClient {
	return &RetrievalClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 5 * time.Minute},
		query:   query,
	}
}

type retrievalRequest struct {
	TenantID string            `json:"tenant_id"`
	Query    string            `json:"query"`
	Filters  map[string]string `json:"filters"`
}

type retrievalResponse struct {
	Response string `json:"response"`
}

func (c *RetrievalClient) Summarize(ctx context.Context, tenantID, filterKey, filterValue string) (string, error) {
	payload, err := json.Marshal(retrievalRequest{
		TenantID: tenantID,
		Query:    c.query(filterKey, filterValue),
		Filters:  map[string]string{filterKey: filterValue},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/query", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("retrieval request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("retrieval error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var out retrievalResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if strings.TrimSpace(out.Response) == "" {
		return "", ErrEmptySummary
	}
	return out.Response, nil
}
