package main

import (
	"context"
	"errors"
	"net/http"

	goCaptcha "github.com/MrEthical07/goCaptcha"
	"github.com/MrEthical07/goCaptcha/score"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type handler struct {
	engine *goCaptcha.Engine
	logger *zap.Logger
}

type issueRequest struct {
	SiteKey string `json:"siteKey"`
}

type verifyRequest struct {
	Token   string        `json:"token"`
	Secret  string        `json:"secret"`
	Signals score.Signals `json:"signals"`
}

type batchVerifyRequest struct {
	Secret        string `json:"secret"`
	Verifications []struct {
		Token   string        `json:"token"`
		Signals score.Signals `json:"signals"`
	} `json:"verifications"`
}

type createSiteKeyRequest struct {
	Domain string `json:"domain"`
}

type updateSiteKeyRequest struct {
	Enabled *bool `json:"enabled"`
}

// requestContext threads the caller's IP and user agent into the engine
// context so throttling and the ledger see them.
func requestContext(c echo.Context) context.Context {
	ctx := goCaptcha.WithClientIP(c.Request().Context(), c.RealIP())
	if ua := c.Request().UserAgent(); ua != "" {
		ctx = goCaptcha.WithUserAgent(ctx, ua)
	}
	return ctx
}

func (h *handler) issueChallenge(c echo.Context) error {
	req := new(issueRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.SiteKey == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "siteKey is required"})
	}

	issued, err := h.engine.IssueChallenge(requestContext(c), req.SiteKey)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, issued)
}

func (h *handler) verify(c echo.Context) error {
	req := new(verifyRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Token == "" || req.Secret == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "token and secret are required"})
	}

	result, err := h.engine.Verify(requestContext(c), req.Token, req.Secret, req.Signals)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *handler) verifyBatch(c echo.Context) error {
	req := new(batchVerifyRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Secret == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "secret is required"})
	}

	items := make([]goCaptcha.BatchVerification, 0, len(req.Verifications))
	for _, v := range req.Verifications {
		items = append(items, goCaptcha.BatchVerification{
			Token:   v.Token,
			Signals: v.Signals,
		})
	}

	batch, err := h.engine.VerifyBatch(requestContext(c), req.Secret, items)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, batch)
}

func (h *handler) challengeStatus(c echo.Context) error {
	info, err := h.engine.ChallengeStatus(requestContext(c), c.Param("token"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, info)
}

func (h *handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.engine.Health())
}

func (h *handler) createSiteKey(c echo.Context) error {
	req := new(createSiteKeyRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	created, err := h.engine.CreateSiteCredential(requestContext(c), req.Domain)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *handler) listSiteKeys(c echo.Context) error {
	return c.JSON(http.StatusOK, h.engine.ListSiteCredentials())
}

func (h *handler) updateSiteKey(c echo.Context) error {
	req := new(updateSiteKeyRequest)
	if err := c.Bind(req); err != nil || req.Enabled == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "enabled is required"})
	}

	if err := h.engine.SetSiteEnabled(requestContext(c), c.Param("id"), *req.Enabled); err != nil {
		return h.errorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) statistics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.engine.Statistics())
}

func (h *handler) siteStatistics(c echo.Context) error {
	stats, err := h.engine.SiteStatistics(c.Param("id"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *handler) errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, goCaptcha.ErrUnknownSite):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, goCaptcha.ErrSiteDisabled):
		return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, goCaptcha.ErrIssueRateLimited),
		errors.Is(err, goCaptcha.ErrVerifyRateLimited):
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": err.Error()})
	case errors.Is(err, goCaptcha.ErrTokenInvalid),
		errors.Is(err, goCaptcha.ErrBatchEmpty),
		errors.Is(err, goCaptcha.ErrBatchTooLarge),
		errors.Is(err, goCaptcha.ErrDomainRequired):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, goCaptcha.ErrChallengeNotFound),
		errors.Is(err, goCaptcha.ErrCredentialNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		h.logger.Error("internal error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
