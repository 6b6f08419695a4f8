package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSort(t *testing.T) {
	tests := []struct {
		name     string
		sortBy   string
		sortType string
		wantCol  string
		wantDir  string
	}{
		{"合法字段升序", "views", "asc", "views", "asc"},
		{"合法字段降序", "duration", "desc", "duration", "desc"},
		{"外部参数名映射到列名", "createdAt", "asc", "created_at", "asc"},
		{"非法方向回落到desc", "views", "sideways", "views", "desc"},
		{"方向为空回落到desc", "views", "", "views", "desc"},
		{"非法字段回落到时间倒序", "password", "asc", "created_at", "desc"},
		{"全空回落到时间倒序", "", "", "created_at", "desc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, dir := NormalizeSort(tt.sortBy, tt.sortType)
			assert.Equal(t, tt.wantCol, col)
			assert.Equal(t, tt.wantDir, dir)
		})
	}
}

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)

	page, limit = NormalizePage(-5, -1)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)

	// limit超上限被夹紧
	page, limit = NormalizePage(3, 1000)
	assert.Equal(t, 3, page)
	assert.Equal(t, MaxLimit, limit)

	page, limit = NormalizePage(2, 25)
	assert.Equal(t, 2, page)
	assert.Equal(t, 25, limit)
}

func TestNewPage(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, 23, 1, 10)
	assert.Equal(t, int64(23), page.TotalDocs)
	// 23条每页10条，共3页
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)

	// 总数整除时不多算一页
	page = NewPage([]int{1, 2}, 20, 2, 10)
	assert.Equal(t, 2, page.TotalPages)

	// nil docs序列化成[]而不是null
	empty := NewPage[int](nil, 0, 1, 10)
	assert.NotNil(t, empty.Docs)
	assert.Len(t, empty.Docs, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
