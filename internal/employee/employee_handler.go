package employee

import (
	"net/http"
	"strconv"
	"strings"

	employeeerrors "go-leave/internal/employee/errors"
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
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := response.FromError(c, err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if dept := strings.TrimSpace(c.Query("department")); dept != "" {
		filtered := make([]EmployeeResponse, 0, len(resp))
		for _, e := range resp {
			if strings.EqualFold(e.Department, dept) {
				filtered = append(filtered, e)
			}
		}
		resp = filtered
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetOptions(c *gin.Context) {
	resp, err := h.service.GetOptions(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeServiceError(c, employeeerrors.ErrInvalidEmployeeID)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MyBalance(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	resp, err := h.service.GetBalance(c.Request.Context(), actorID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
