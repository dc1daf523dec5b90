package response

import (
	"strconv"

	"go-leave/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
	Pending    *int  `json:"pending,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		// ceil(total / limit)
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

// PageParams reads page and page_size from the query string.
func PageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}
	return page, pageSize
}

// Paginate slices items for the requested page and builds its meta.
func Paginate[T any](items []T, page, pageSize int) ([]T, PaginationMeta) {
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], NewPaginationMeta(int64(len(items)), page, pageSize)
}

type ApiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error any             `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:    true,
		Data:  data,
		Meta:  meta,
		Error: nil,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok:   false,
		Data: nil,
		Meta: nil,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}

// FromError renders err through apperror.ToHTTP and returns the mapped value
// so callers can log it.
func FromError(c *gin.Context, err error) apperror.HTTPError {
	httpErr := apperror.ToHTTP(err)
	Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	return httpErr
}
