// Package notification wraps the external notification (email) service. The
// orchestrator treats dispatch failures as per-candidate outcomes, never as
// batch failures.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	TemplateInvitation = "interview_invitation"
	TemplateWelcome    = "welcome"
)

type Notifier interface {
	Send(ctx context.Context, template, recipient string, payload map[string]any) error
}

type httpNotifier struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

type sendRequest struct {
	Template  string         `json:"template"`
	Recipient string         `json:"recipient"`
	Payload   map[string]any `json:"payload"`
}

// NewHTTPNotifier returns nil when no base URL is configured; callers must
// treat a nil Notifier as "dispatch disabled".
func NewHTTPNotifier(baseURL string, logger *zap.Logger) Notifier {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	return &httpNotifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

func (n *httpNotifier) Send(ctx context.Context, template, recipient string, payload map[string]any) error {
	if n == nil || n.client == nil {
		return errors.New("nil notifier")
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return errors.New("empty recipient")
	}

	endpoint := n.baseURL + "/send"

	b, err := json.Marshal(sendRequest{Template: template, Recipient: recipient, Payload: payload})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		err := fmt.Errorf("notification dispatch failed: status=%d body=%s", resp.StatusCode, bodyStr)
		if n.logger != nil {
			n.logger.Warn("notification dispatch failed",
				zap.String("template", template),
				zap.Int("status", resp.StatusCode),
				zap.String("body", bodyStr),
			)
		}
		return err
	}

	return nil
}

var _ Notifier = (*httpNotifier)(nil)
