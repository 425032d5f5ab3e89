package repository

import (
	"math"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	// 页码上限，保证(Page-1)*Limit不会溢出
	MaxPage = math.MaxInt / MaxPageLimit
)

// Pagination 分页参数，Page从1开始
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination 规整分页参数：页码落在[1, MaxPage]，每页条数落在[1, MaxPageLimit]
func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset 跳过多少条记录再开始取
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// 关联查询作者时只取公开字段
func publicUserColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "full_name", "avatar_url", "cover_url", "created_at")
}

// visibleTo 已发布的视频所有人可见，未发布的只有作者本人可见；匿名viewer为0，不会命中任何作者
func visibleTo(viewerID uint64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("videos.is_published = ? OR videos.owner_id = ?", true, viewerID)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 转义LIKE里的通配符，用户输入的%和_按字面匹配
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
