package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name      string
		page      int
		pageSize  int
		want      []int
		wantPages int
	}{
		{"first page", 1, 2, []int{1, 2}, 3},
		{"last partial page", 3, 2, []int{5}, 3},
		{"past the end", 9, 2, []int{}, 3},
		{"single page", 1, 10, []int{1, 2, 3, 4, 5}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, meta := response.Paginate(items, tt.page, tt.pageSize)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, int64(5), meta.Total)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
		})
	}
}

func TestPageParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=-1&page_size=abc", nil)

	page, size := response.PageParams(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)
}

func TestFromError_WritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	httpErr := response.FromError(c, apperror.ErrForbidden.WithDetails("leave:approve"))
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	errBody := body["error"].(map[string]any)
	assert.Equal(t, apperror.CodeForbidden, errBody["code"])
	assert.Equal(t, "leave:approve", errBody["details"])
}

func TestSuccess_WritesMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	pending := 2
	meta := response.NewPaginationMeta(5, 1, 10)
	meta.Pending = &pending
	response.Success(c, http.StatusOK, []string{"a"}, &meta)

	var body struct {
		Ok   bool                    `json:"ok"`
		Meta response.PaginationMeta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Ok)
	require.NotNil(t, body.Meta.Pending)
	assert.Equal(t, 2, *body.Meta.Pending)
}
