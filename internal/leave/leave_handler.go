package leave

import (
	"net/http"
	"strconv"
	"strings"

	"go-leave/internal/employee"
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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := response.FromError(c, err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
}

func (h *Handler) Create(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	filter, err := parseFilter(c, false)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.ListByEmployee(c.Request.Context(), actorID, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

// ListAll shows pending requests unless ?status= says otherwise;
// ?status=all lists everything.
func (h *Handler) ListAll(c *gin.Context) {
	ctx := c.Request.Context()

	filter, err := parseFilter(c, true)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.ListAll(ctx, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	pending, err := h.service.CountPending(ctx)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(resp, page, pageSize)
	p := int(pending)
	meta.Pending = &p
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
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

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if resp.EmployeeID != actorID {
		role, err := employee.ParseRole(middleware.GetActorRole(c))
		if err != nil || !role.CanDecide() {
			h.writeServiceError(c, leaveerrors.ErrForbiddenLeaveAccess)
			return
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func parseFilter(c *gin.Context, pendingByDefault bool) (ListFilter, error) {
	var f ListFilter

	statuses := splitQuery(c.QueryArray("status"))
	switch {
	case len(statuses) == 0:
		f.PendingOnly = pendingByDefault
	case len(statuses) == 1 && strings.EqualFold(statuses[0], "all"):
	default:
		for _, raw := range statuses {
			st, err := ParseStatus(raw)
			if err != nil {
				return ListFilter{}, err
			}
			f.Statuses = append(f.Statuses, st)
		}
	}

	for _, raw := range splitQuery(c.QueryArray("leave_type")) {
		t, err := ParseLeaveType(raw)
		if err != nil {
			return ListFilter{}, err
		}
		f.LeaveTypes = append(f.LeaveTypes, t)
	}
	return f, nil
}

// splitQuery accepts both ?k=a&k=b and ?k=a,b.
func splitQuery(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
