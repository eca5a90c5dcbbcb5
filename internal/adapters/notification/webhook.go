// Package notification publishes document change events to a configured
// webhook.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/services"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/middleware"
)

// WebhookNotifier posts fire-and-forget events. Delivery failures are logged
// and never reach the processing pipeline.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
}

// NewWebhookNotifier creates a webhook notifier. An empty URL disables
// delivery; calls become no-ops.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ portssvc.Notifier = (*WebhookNotifier)(nil)

type documentsChangedEvent struct {
	Event      string `json:"event"`
	CaseFileID string `json:"caseFileID"`
}

// DocumentsChanged notifies subscribers that a case file's documents changed.
func (n *WebhookNotifier) DocumentsChanged(ctx context.Context, caseFileID string) {
	if n.url == "" {
		return
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	payload, err := json.Marshal(documentsChangedEvent{Event: "documents.changed", CaseFileID: caseFileID})
	if err != nil {
		logger.Error("Failed to encode webhook event", slog.String("error", err.Error()))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		logger.Error("Failed to build webhook request", slog.String("error", err.Error()))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		logger.Warn("Webhook delivery failed",
			slog.String("case_file_id", caseFileID), slog.String("error", err.Error()))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("Webhook delivery rejected",
			slog.String("case_file_id", caseFileID), slog.Int("status", resp.StatusCode))
	}
}
