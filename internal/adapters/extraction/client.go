// Package extraction is the HTTP adapter to the external AI extraction
// service.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	portssvc "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/services"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/dto"
)

// Client calls the extraction service over HTTP. Both endpoints return the
// same envelope; validation of the payload happens in the core.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an extraction client. A zero timeout means no client-side
// deadline beyond the request context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ portssvc.ExtractionClient = (*Client)(nil)

// ExtractInvoice requests extraction of a standard document by its stored
// filename.
func (c *Client) ExtractInvoice(ctx context.Context, filename string) (*dto.ExtractionResponse, error) {
	return c.post(ctx, "/api/extract/invoice", map[string]string{"filename": filename})
}

// ExtractBankStatement requests extraction of a bank statement by its
// document identifier.
func (c *Client) ExtractBankStatement(ctx context.Context, documentID string) (*dto.ExtractionResponse, error) {
	return c.post(ctx, "/api/extract/bank-statement", map[string]string{"documentId": documentID})
}

func (c *Client) post(ctx context.Context, path string, body map[string]string) (*dto.ExtractionResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("extraction service returned status %d: %s", resp.StatusCode, string(snippet))
	}

	var envelope dto.ExtractionResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}
	return &envelope, nil
}
