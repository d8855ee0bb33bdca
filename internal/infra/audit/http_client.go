// Package audit contains the HTTP client for the separate infraaudit service,
// which runs the actual AWS infrastructure checks.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"clouddoctor/config"
	"clouddoctor/internal/domain/service"
)

const defaultAuditTimeout = 30 * time.Second

// httpAuditClient implements service.AuditClient by POSTing to the infraaudit
// REST API. The response body is passed through untouched; this backend does
// not interpret audit results.
type httpAuditClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient is the constructor for httpAuditClient.
func NewHTTPClient(cfg *config.Config, logger *slog.Logger) service.AuditClient {
	timeout := cfg.InfraAudit.Timeout
	if timeout <= 0 {
		timeout = defaultAuditTimeout
	}

	return &httpAuditClient{
		baseURL: cfg.InfraAudit.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// StartAudit kicks off an infrastructure scan downstream.
func (c *httpAuditClient) StartAudit(ctx context.Context, auditReq *service.AuditStartRequest) (json.RawMessage, error) {
	body, err := json.Marshal(auditReq)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	url := c.baseURL + "/api/audit/start"

	c.logger.Info("[InfraAudit] Starting audit",
		slog.String("url", url),
		slog.String("account_id", auditReq.AccountID),
		slog.Int("check_count", len(auditReq.Checks)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "infraaudit request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read infraaudit response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("infraaudit returned non-success status: %d", resp.StatusCode)
	}

	c.logger.Info("[InfraAudit] Audit started",
		slog.String("account_id", auditReq.AccountID),
	)

	return json.RawMessage(respBody), nil
}
