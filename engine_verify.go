package goCaptcha

import (
	"context"
	"strconv"
	"time"

	"github.com/MrEthical07/goCaptcha/score"
)

// Verify describes the verify operation and its observable behavior.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Lifecycle denials (bad token, expired or replayed challenge, wrong secret,
// bot score) are reported as a Success=false result, never as an error.
// Rate limiting is the exception: it is a distinct rejection and produces
// neither a result nor a ledger record.
func (e *Engine) Verify(ctx context.Context, tok, secret string, signals score.Signals) (VerificationResult, error) {
	if e == nil {
		return VerificationResult{}, ErrEngineNotReady
	}

	if !e.verifyLimiter.Check(throttleKey(ctx)) {
		e.metricInc(MetricVerifyRateLimited)
		e.emitRateLimit(ctx, "verify", "", nil)
		return VerificationResult{}, ErrVerifyRateLimited
	}

	return e.verifyOne(ctx, tok, secret, signals), nil
}

// VerifyBatch describes the verifybatch operation and its observable behavior.
//
// VerifyBatch may return an error when input validation, dependency calls, or security checks fail.
// VerifyBatch does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The batch charges the caller's verify throttle once. Items are verified
// independently; one item failing never aborts the rest.
func (e *Engine) VerifyBatch(ctx context.Context, secret string, items []BatchVerification) (BatchResult, error) {
	if e == nil {
		return BatchResult{}, ErrEngineNotReady
	}

	if len(items) == 0 {
		return BatchResult{}, ErrBatchEmpty
	}
	if len(items) > e.config.Batch.MaxItems {
		return BatchResult{}, ErrBatchTooLarge
	}

	if !e.verifyLimiter.Check(throttleKey(ctx)) {
		e.metricInc(MetricVerifyRateLimited)
		e.emitRateLimit(ctx, "batch_verify", "", nil)
		return BatchResult{}, ErrVerifyRateLimited
	}

	batch := BatchResult{
		Results: make([]BatchItemResult, 0, len(items)),
		Total:   len(items),
	}

	for _, item := range items {
		result := e.verifyOne(ctx, item.Token, secret, item.Signals)
		if result.Success {
			batch.Verified++
		}
		batch.Results = append(batch.Results, BatchItemResult{
			Token:              item.Token,
			VerificationResult: result,
		})
	}

	e.metricInc(MetricBatchVerify)
	e.emitAudit(ctx, auditEventBatchVerify, true, "", "", nil, func() map[string]string {
		return map[string]string{
			"total":    strconv.Itoa(batch.Total),
			"verified": strconv.Itoa(batch.Verified),
		}
	})

	return batch, nil
}

// verifyOne walks one token through the full verification sequence. Checks
// before the secret check fail without a ledger record: no legitimate
// challenge context exists yet, so there is nothing to attribute.
func (e *Engine) verifyOne(ctx context.Context, tok, secret string, signals score.Signals) VerificationResult {
	start := time.Now()
	defer func() {
		e.metricObserve(MetricVerifyLatency, time.Since(start))
	}()

	if !e.signer.Verify(tok) {
		e.metricInc(MetricTokenRejected)
		e.emitAudit(ctx, auditEventTokenRejected, false, "", tok, ErrTokenInvalid, nil)
		return e.denied(reasonInvalidSignature)
	}

	ch, ok := e.challenges.Get(tok)
	if !ok {
		e.metricInc(MetricChallengeExpired)
		e.emitAudit(ctx, auditEventVerifyFailure, false, "", tok, ErrChallengeNotFound, nil)
		return e.denied(reasonChallengeNotFound)
	}

	if ch.Solved {
		e.metricInc(MetricReplayDetected)
		e.emitAudit(ctx, auditEventReplayDetected, false, ch.SiteID, tok, nil, nil)
		return e.denied(reasonAlreadyUsed)
	}

	if ch.Attempts >= e.config.Challenge.MaxAttempts {
		e.challenges.Delete(tok)
		e.metricInc(MetricAttemptsExceeded)
		e.emitAudit(ctx, auditEventAttemptsExceeded, false, ch.SiteID, tok, nil, nil)
		return e.denied(reasonTooManyAttempts)
	}

	if !e.credentials.ValidateSecret(ch.SiteID, secret) {
		e.challenges.IncrementAttempts(tok)
		result := e.denied(reasonInvalidSecret)
		e.record(ctx, ch.SiteID, signals, result)
		e.metricInc(MetricSecretRejected)
		e.metricInc(MetricVerifyFailure)
		e.emitAudit(ctx, auditEventSecretRejected, false, ch.SiteID, tok, nil, nil)
		return result
	}

	e.challenges.IncrementAttempts(tok)

	scored := score.Evaluate(signals)

	result := VerificationResult{
		Success:   !scored.IsBot && scored.Score >= score.HumanThreshold,
		Score:     scored.Score,
		IsBot:     scored.IsBot,
		Reasons:   scored.Reasons,
		Timestamp: time.Now().UTC(),
	}

	if result.Success {
		e.challenges.MarkSolved(tok)
		e.metricInc(MetricVerifySuccess)
		e.emitAudit(ctx, auditEventVerifySuccess, true, ch.SiteID, tok, nil, func() map[string]string {
			return map[string]string{"score": strconv.Itoa(result.Score)}
		})
	} else {
		e.metricInc(MetricVerifyFailure)
		if result.IsBot {
			e.metricInc(MetricBotDetected)
			e.emitAudit(ctx, auditEventBotDetected, false, ch.SiteID, tok, nil, func() map[string]string {
				return map[string]string{"score": strconv.Itoa(result.Score)}
			})
		} else {
			e.emitAudit(ctx, auditEventVerifyFailure, false, ch.SiteID, tok, nil, nil)
		}
	}

	e.record(ctx, ch.SiteID, signals, result)

	return result
}

// denied builds the uniform failure shape for lifecycle denials. The wrong
// secret case deliberately shares this shape with bot detections so a caller
// cannot distinguish which check failed.
func (e *Engine) denied(reason string) VerificationResult {
	return VerificationResult{
		Success:   false,
		Score:     0,
		IsBot:     true,
		Reasons:   []string{reason},
		Timestamp: time.Now().UTC(),
	}
}

func (e *Engine) record(ctx context.Context, siteID string, signals score.Signals, result VerificationResult) {
	ip := clientIPFromContext(ctx)

	country := countryFromContext(ctx)
	if country == "" && e.geo != nil && ip != "" {
		country = e.geo.Country(ip)
	}

	userAgent := signals.UserAgent
	if userAgent == "" {
		userAgent = userAgentFromContext(ctx)
	}

	e.ledger.Record(LedgerEntry{
		Timestamp: result.Timestamp,
		SiteID:    siteID,
		Success:   result.Success,
		IsBot:     result.IsBot,
		Score:     result.Score,
		ClientIP:  ip,
		UserAgent: userAgent,
		Country:   country,
	})
}
