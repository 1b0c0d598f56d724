package goCaptcha

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the verification engine.
	ErrEngineNotReady = errors.New("engine not ready")
	// ErrUnknownSite is an exported constant or variable used by the verification engine.
	ErrUnknownSite = errors.New("unknown site key")
	// ErrSiteDisabled is an exported constant or variable used by the verification engine.
	ErrSiteDisabled = errors.New("site key disabled")
	// ErrIssueRateLimited is an exported constant or variable used by the verification engine.
	ErrIssueRateLimited = errors.New("issuance rate limited")
	// ErrVerifyRateLimited is an exported constant or variable used by the verification engine.
	ErrVerifyRateLimited = errors.New("verification rate limited")
	// ErrTokenInvalid is an exported constant or variable used by the verification engine.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrChallengeNotFound is an exported constant or variable used by the verification engine.
	ErrChallengeNotFound = errors.New("challenge not found or expired")
	// ErrBatchEmpty is an exported constant or variable used by the verification engine.
	ErrBatchEmpty = errors.New("batch contains no verifications")
	// ErrBatchTooLarge is an exported constant or variable used by the verification engine.
	ErrBatchTooLarge = errors.New("batch exceeds maximum size")
	// ErrDomainRequired is an exported constant or variable used by the verification engine.
	ErrDomainRequired = errors.New("domain label required")
	// ErrCredentialNotFound is an exported constant or variable used by the verification engine.
	ErrCredentialNotFound = errors.New("site credential not found")
	// ErrCredentialExists is an exported constant or variable used by the verification engine.
	ErrCredentialExists = errors.New("site credential already registered")
	// ErrCredentialInvalid is an exported constant or variable used by the verification engine.
	ErrCredentialInvalid = errors.New("invalid site credential material")
	// ErrBuilderUsed is an exported constant or variable used by the verification engine.
	ErrBuilderUsed = errors.New("builder already used")
)
