package goCaptcha

import "context"

type clientIPContextKey struct{}
type userAgentContextKey struct{}
type countryContextKey struct{}

// WithClientIP attaches the caller's IP address to ctx. The Engine uses it
// for per-IP rate limiting, ledger records, and country resolution.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// WithUserAgent attaches the HTTP User-Agent string to ctx. Used as the
// scoring user agent when the behavioral signals carry none.
func WithUserAgent(ctx context.Context, userAgent string) context.Context {
	return context.WithValue(ctx, userAgentContextKey{}, userAgent)
}

// WithCountry attaches a pre-resolved ISO country code to ctx, taking
// precedence over the Engine's configured [CountryResolver].
func WithCountry(ctx context.Context, country string) context.Context {
	return context.WithValue(ctx, countryContextKey{}, country)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

func userAgentFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	userAgent, _ := ctx.Value(userAgentContextKey{}).(string)
	return userAgent
}

func countryFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	country, _ := ctx.Value(countryContextKey{}).(string)
	return country
}
