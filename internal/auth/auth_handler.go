package auth

import (
	"net/http"
	"time"

	"go-leave/internal/middleware"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const accessTokenCookie = "access_token"

type Handler struct {
	service      Service
	secureCookie bool
	logger       *zap.Logger
}

// NewHandler builds the auth handler. secureCookie marks the access token
// cookie Secure and should be set outside local development.
func NewHandler(s Service, secureCookie bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, secureCookie: secureCookie, logger: l}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpErr := response.FromError(c, err)
		h.logger.Info("login rejected", zap.Int("status", httpErr.Status), zap.String("ip", c.ClientIP()))
		return
	}

	maxAge := int(time.Until(time.Unix(resp.ExpiresAt, 0)).Seconds())
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    resp.AccessToken,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Me(c *gin.Context) {
	employeeID, ok := middleware.GetActorID(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	resp, err := h.service.GetMe(c.Request.Context(), employeeID)
	if err != nil {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	response.Success(c, http.StatusOK, "Logout success.", nil)
}
