package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net"
	"net/http"

	goCaptcha "github.com/MrEthical07/goCaptcha"
	"github.com/MrEthical07/goCaptcha/score"
)

// TokenHeader names the request header carrying the solved challenge token.
const TokenHeader = "X-Captcha-Token"

// SignalsHeader names the request header carrying base64-encoded JSON
// behavioral signals collected by the widget.
const SignalsHeader = "X-Captcha-Signals"

type resultContextKey struct{}

// ResultFromContext returns the verification result stored by [Guard] for
// the current request.
func ResultFromContext(ctx context.Context) (*goCaptcha.VerificationResult, bool) {
	res, ok := ctx.Value(resultContextKey{}).(*goCaptcha.VerificationResult)
	return res, ok
}

// Guard returns middleware that admits a request only when it carries a
// challenge token that verifies as human. The verification consumes the
// token: a second request reusing it is rejected as a replay.
func Guard(engine *goCaptcha.Engine, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "verification unavailable", http.StatusServiceUnavailable)
				return
			}

			tok := r.Header.Get(TokenHeader)
			if tok == "" {
				http.Error(w, "captcha token required", http.StatusForbidden)
				return
			}

			signals, ok := decodeSignals(r.Header.Get(SignalsHeader))
			if !ok {
				http.Error(w, "captcha signals required", http.StatusForbidden)
				return
			}

			ctx := clientContext(r)

			result, err := engine.Verify(ctx, tok, secret, signals)
			if err != nil {
				http.Error(w, "verification rejected", http.StatusTooManyRequests)
				return
			}
			if !result.Success {
				http.Error(w, "verification failed", http.StatusForbidden)
				return
			}

			ctx = context.WithValue(ctx, resultContextKey{}, &result)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func decodeSignals(encoded string) (score.Signals, bool) {
	var signals score.Signals
	if encoded == "" {
		return signals, false
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return signals, false
	}
	if err := json.Unmarshal(raw, &signals); err != nil {
		return signals, false
	}
	return signals, true
}

func clientContext(r *http.Request) context.Context {
	ctx := r.Context()

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host != "" {
		ctx = goCaptcha.WithClientIP(ctx, host)
	}
	if ua := r.UserAgent(); ua != "" {
		ctx = goCaptcha.WithUserAgent(ctx, ua)
	}
	return ctx
}
