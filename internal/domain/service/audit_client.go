package service

import (
	"context"
	"encoding/json"
)

// AuditStartRequest is the payload sent to the infraaudit service to kick off
// an infrastructure security scan. Field names follow its snake_case API.
type AuditStartRequest struct {
	AccountID  string   `json:"account_id"`
	RoleName   string   `json:"role_name"`
	ExternalID string   `json:"external_id"`
	Checks     []string `json:"checks"`
}

// AuditClient is the outbound boundary to the separate infraaudit service.
// The response body is passed through to the caller untouched.
type AuditClient interface {
	// StartAudit POSTs the request downstream and returns the raw response
	// body on success.
	StartAudit(ctx context.Context, req *AuditStartRequest) (json.RawMessage, error)
}
