package approval

import (
	"net/http"
	"strconv"

	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/middleware"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("approval.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := response.FromError(c, err)
	h.logger.Warn("approval request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
}

func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, true)
}

func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, false)
}

func (h *Handler) decide(c *gin.Context, approve bool) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeServiceError(c, leaveerrors.ErrInvalidLeaveID)
		return
	}

	ctx := c.Request.Context()
	decide := h.service.Reject
	if approve {
		decide = h.service.Approve
	}

	resp, err := decide(ctx, id, actorID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
