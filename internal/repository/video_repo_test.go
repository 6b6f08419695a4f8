package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

type capturedQuery struct {
	sql  string
	vars []interface{}
}

// DryRun模式只生成SQL不执行，挂一个回调就能拿到FindPage实际组装出的语句
func newDryRunDB(t *testing.T) (*gorm.DB, *[]capturedQuery) {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	var captured []capturedQuery
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		captured = append(captured, capturedQuery{
			sql:  tx.Statement.SQL.String(),
			vars: tx.Statement.Vars,
		})
	})
	require.NoError(t, err)
	return db, &captured
}

// 全部过滤段开启时的管道：总数和当前页是两条语句，过滤条件必须一致
func TestFindPageComposesFeedPipeline(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewVideoRepository(db, nil)

	_, err := repo.FindPage(FeedOptions{
		Query:    "100%_a",
		OwnerID:  7,
		SortBy:   "views",
		SortType: "asc",
		Page:     2,
		Limit:    5,
	})
	require.NoError(t, err)
	require.Len(t, *captured, 2)

	countQuery, pageQuery := (*captured)[0], (*captured)[1]

	for _, q := range *captured {
		assert.Contains(t, q.sql, "is_published = ?")
		assert.Contains(t, q.sql, "owner_id = ?")
		assert.Contains(t, q.sql, "title LIKE ? OR description LIKE ?")
		// LIKE通配符已转义，"100%_a"不能变成前缀匹配
		assert.Contains(t, q.vars, "%100\\%\\_a%")
	}

	// 总数查询不带排序
	assert.Contains(t, countQuery.sql, "count(*)")
	assert.NotContains(t, countQuery.sql, "ORDER BY")

	// 当前页带稳定排序和分页，第2页每页5条跳过前5条
	assert.Contains(t, pageQuery.sql, "ORDER BY views asc, id asc")
	assert.Contains(t, pageQuery.sql, "LIMIT ?")
	assert.Contains(t, pageQuery.sql, "OFFSET ?")
	assert.Contains(t, pageQuery.vars, 5)
}

// 不带任何过滤参数：只剩已发布过滤，排序回落到时间倒序
func TestFindPageDefaults(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewVideoRepository(db, nil)

	_, err := repo.FindPage(FeedOptions{})
	require.NoError(t, err)
	require.Len(t, *captured, 2)

	pageQuery := (*captured)[1]
	assert.Contains(t, pageQuery.sql, "is_published = ?")
	assert.NotContains(t, pageQuery.sql, "owner_id")
	assert.NotContains(t, pageQuery.sql, "LIKE")
	assert.Contains(t, pageQuery.sql, "ORDER BY created_at desc, id desc")
}
