package goCaptcha

import "context"

// ChallengeStatus describes the challengestatus operation and its observable behavior.
//
// ChallengeStatus may return an error when input validation, dependency calls, or security checks fail.
// ChallengeStatus does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ChallengeStatus(ctx context.Context, tok string) (ChallengeInfo, error) {
	if e == nil {
		return ChallengeInfo{}, ErrEngineNotReady
	}

	if !e.signer.Verify(tok) {
		e.metricInc(MetricTokenRejected)
		return ChallengeInfo{}, ErrTokenInvalid
	}

	ch, ok := e.challenges.Get(tok)
	if !ok {
		return ChallengeInfo{}, ErrChallengeNotFound
	}

	return ChallengeInfo{
		ExpiresAt: ch.ExpiresAt,
		Attempts:  ch.Attempts,
	}, nil
}
