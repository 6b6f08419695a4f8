// Package query 是聚合查询的组装层：把“过滤→匹配→排序→分页”表达成
// 可以自由叠加的gorm Scope，repository层按用例挑选组合
package query

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// 排序字段白名单：对外参数名 → 数据库列名
// 直接拼接外部输入会有注入风险，所以必须经过这张表
var sortColumns = map[string]string{
	"views":     "views",
	"createdAt": "created_at",
	"duration":  "duration",
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// NormalizeSort 把外部排序参数收敛到白名单内，非法值回落到默认的时间倒序
func NormalizeSort(sortBy, sortType string) (column, direction string) {
	column, ok := sortColumns[sortBy]
	if !ok {
		return "created_at", "desc"
	}
	switch sortType {
	case "asc":
		direction = "asc"
	case "desc":
		direction = "desc"
	default:
		direction = "desc"
	}
	return column, direction
}

// NormalizePage 夹紧分页参数，page从1开始，limit限制在(0, MaxLimit]
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Published 只保留已发布的视频
func Published() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_published = ?", true)
	}
}

// OwnedBy 按作者过滤
func OwnedBy(ownerID uint64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}

// MatchText 在标题和简介上做子串匹配，LIKE通配符要先转义
func MatchText(q string) func(*gorm.DB) *gorm.DB {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
	pattern := "%" + escaped + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
}

// OrderStable 主排序键之外永远追加同方向的id作为次级排序键
// 主键值相同时顺序也是确定的，翻页才不会出现某条记录跨页重复或丢失
func OrderStable(column, direction string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(fmt.Sprintf("%s %s, id %s", column, direction, direction))
	}
}

// Paginate offset分页：第N页跳过(N-1)*limit条
func Paginate(page, limit int) func(*gorm.DB) *gorm.DB {
	page, limit = NormalizePage(page, limit)
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}

// Page 是分页查询的统一返回结构，总数和当前页一起给出
type Page[T any] struct {
	Docs       []T   `json:"docs"`
	TotalDocs  int64 `json:"totalDocs"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPage 组装分页结果并算出总页数
func NewPage[T any](docs []T, total int64, page, limit int) Page[T] {
	page, limit = NormalizePage(page, limit)
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if docs == nil {
		docs = []T{}
	}
	return Page[T]{
		Docs:       docs,
		TotalDocs:  total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
