package goCaptcha

import (
	"context"
	"encoding/base64"
	"math/rand"
)

// IssueChallenge describes the issuechallenge operation and its observable behavior.
//
// IssueChallenge may return an error when input validation, dependency calls, or security checks fail.
// IssueChallenge does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) IssueChallenge(ctx context.Context, publicID string) (IssuedChallenge, error) {
	if e == nil {
		return IssuedChallenge{}, ErrEngineNotReady
	}

	cred, ok := e.credentials.LookupPublic(publicID)
	if !ok {
		e.emitAudit(ctx, auditEventChallengeIssued, false, publicID, "", ErrUnknownSite, nil)
		return IssuedChallenge{}, ErrUnknownSite
	}
	if !cred.Enabled {
		e.emitAudit(ctx, auditEventChallengeIssued, false, publicID, "", ErrSiteDisabled, nil)
		return IssuedChallenge{}, ErrSiteDisabled
	}

	if !e.issueLimiter.Check(throttleKey(ctx)) {
		e.metricInc(MetricIssueRateLimited)
		e.emitRateLimit(ctx, "issue", publicID, nil)
		return IssuedChallenge{}, ErrIssueRateLimited
	}

	tok, err := e.signer.Generate()
	if err != nil {
		return IssuedChallenge{}, err
	}

	ch := e.challenges.Create(tok, publicID, e.config.Challenge.TTL)

	issued := IssuedChallenge{
		Token:           tok,
		ExpiresAt:       ch.ExpiresAt,
		CanvasChallenge: base64.StdEncoding.EncodeToString([]byte(e.config.Widget.CanvasPhrase)),
	}
	issued.Kind, issued.Data = e.widgetPayload()

	e.metricInc(MetricChallengeIssued)
	e.emitAudit(ctx, auditEventChallengeIssued, true, publicID, tok, nil, func() map[string]string {
		return map[string]string{"type": string(issued.Kind)}
	})

	return issued, nil
}

// widgetPayload picks the interactive challenge variant. Target coordinates
// are rendering hints for the widget; verification never compares against
// them, only against the behavioral signals collected while solving.
func (e *Engine) widgetPayload() (ChallengeKind, ChallengeData) {
	if rand.Float64() < e.config.Widget.DragProbability {
		return ChallengeDrag, ChallengeData{
			TargetX:  50 + rand.Intn(200),
			TargetY:  50 + rand.Intn(100),
			Rotation: rand.Intn(360),
		}
	}
	return ChallengePuzzle, ChallengeData{
		TargetX: 50 + rand.Intn(300),
		TargetY: 50 + rand.Intn(200),
	}
}

// throttleKey buckets rate limiter state by caller IP. Calls without an IP
// in context share a single bucket rather than bypassing the limiter.
func throttleKey(ctx context.Context) string {
	ip := clientIPFromContext(ctx)
	if ip == "" {
		return "ip:unknown"
	}
	return "ip:" + ip
}
