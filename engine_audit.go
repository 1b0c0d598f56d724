package goCaptcha

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventChallengeIssued   = "challenge_issued"
	auditEventVerifySuccess     = "verify_success"
	auditEventVerifyFailure     = "verify_failure"
	auditEventTokenRejected     = "token_rejected"
	auditEventReplayDetected    = "replay_detected"
	auditEventAttemptsExceeded  = "attempts_exceeded"
	auditEventSecretRejected    = "secret_rejected"
	auditEventBotDetected       = "bot_detected"
	auditEventBatchVerify       = "batch_verify"
	auditEventCredentialCreated = "credential_created"
	auditEventCredentialUpdated = "credential_updated"
	auditEventRateLimitHit      = "rate_limit_triggered"
)

// AuditErrorCode defines a public type used by goCaptcha APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrUnknownSite        AuditErrorCode = "unknown_site"
	auditErrSiteDisabled       AuditErrorCode = "site_disabled"
	auditErrRateLimited        AuditErrorCode = "rate_limited"
	auditErrInvalidToken       AuditErrorCode = "invalid_token"
	auditErrChallengeNotFound  AuditErrorCode = "challenge_not_found"
	auditErrBatchInvalid       AuditErrorCode = "batch_invalid"
	auditErrDomainRequired     AuditErrorCode = "domain_required"
	auditErrCredentialNotFound AuditErrorCode = "credential_not_found"
	auditErrCredentialExists   AuditErrorCode = "credential_exists"
	auditErrCredentialInvalid  AuditErrorCode = "credential_invalid"
	auditErrEngineNotReady     AuditErrorCode = "engine_not_ready"
	auditErrInternal           AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	siteID string,
	token string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		SiteID:    siteID,
		Token:     token,
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func (e *Engine) emitRateLimit(
	ctx context.Context,
	scope string,
	siteID string,
	metadataBuilder func() map[string]string,
) {
	e.emitAudit(ctx, auditEventRateLimitHit, false, siteID, "", nil, func() map[string]string {
		base := map[string]string{
			"scope": scope,
		}
		if metadataBuilder == nil {
			return base
		}
		for k, v := range metadataBuilder() {
			base[k] = v
		}
		return base
	})
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrUnknownSite):
		return auditErrUnknownSite
	case errors.Is(err, ErrSiteDisabled):
		return auditErrSiteDisabled
	case errors.Is(err, ErrIssueRateLimited),
		errors.Is(err, ErrVerifyRateLimited):
		return auditErrRateLimited
	case errors.Is(err, ErrTokenInvalid):
		return auditErrInvalidToken
	case errors.Is(err, ErrChallengeNotFound):
		return auditErrChallengeNotFound
	case errors.Is(err, ErrBatchEmpty),
		errors.Is(err, ErrBatchTooLarge):
		return auditErrBatchInvalid
	case errors.Is(err, ErrDomainRequired):
		return auditErrDomainRequired
	case errors.Is(err, ErrCredentialNotFound):
		return auditErrCredentialNotFound
	case errors.Is(err, ErrCredentialExists):
		return auditErrCredentialExists
	case errors.Is(err, ErrCredentialInvalid):
		return auditErrCredentialInvalid
	case errors.Is(err, ErrEngineNotReady):
		return auditErrEngineNotReady
	default:
		return auditErrInternal
	}
}
