package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"Vidtube/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 列表允许的排序字段，前端字段名 -> 列名
var videoSortColumns = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

// IsVideoSortField 排序字段白名单
func IsVideoSortField(sortBy string) bool {
	_, ok := videoSortColumns[sortBy]
	return ok
}

// VideoListQuery 公开视频列表的查询条件
type VideoListQuery struct {
	Pagination
	Query    string // 标题子串，不区分大小写
	SortBy   string
	SortType string // asc/desc
	OwnerID  uint64 // 0表示不按作者过滤
}

// ChannelStats 频道数据面板
type ChannelStats struct {
	TotalVideos      int64
	TotalViews       int64
	TotalSubscribers int64
	TotalLikes       int64
}

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	FindByID(ctx context.Context, videoID uint64) (*model.Video, error)
	List(ctx context.Context, q VideoListQuery) ([]model.Video, int64, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Video, error)
	Update(ctx context.Context, videoID uint64, fields map[string]interface{}) error
	TogglePublished(ctx context.Context, videoID uint64) error
	SoftDelete(ctx context.Context, videoID uint64) error
	ChannelStats(ctx context.Context, ownerID uint64) (*ChannelStats, error)

	GetVideoCache(ctx context.Context, videoID uint64) (*model.Video, error)
	SetVideoCache(ctx context.Context, video *model.Video) error
	DelVideoCache(ctx context.Context, videoID uint64) error

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

// rdb可以为nil（消费者、种子程序不连Redis），这时缓存操作全部跳过
func NewVideoRepository(db *gorm.DB, rdb *redis.Client) VideoRepository {
	return &videoRepository{
		db:  db,
		rdb: rdb,
	}
}

// WithTx 返回一个新的、使用事务的 videoRepository 实例，缓存客户端照旧
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{
		db:  tx,
		rdb: r.rdb,
	}
}

func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// 利用videoID找视频，preload作者的公开字段，只查库，缓存由service层决定
func (r *videoRepository) FindByID(ctx context.Context, videoID uint64) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Preload("Owner", publicUserColumns).First(&video, videoID).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// List 公开视频列表：1、只看已发布 2、标题模糊匹配、作者过滤 3、白名单排序 4、先count再分页取数据
func (r *videoRepository) List(ctx context.Context, q VideoListQuery) ([]model.Video, int64, error) {
	var total int64
	if err := r.publishedFilter(r.db.WithContext(ctx).Model(&model.Video{}), q).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.Video{}, 0, nil
	}

	var videos []model.Video
	err := videoOrder(r.publishedFilter(r.db.WithContext(ctx), q), q.SortBy, q.SortType).
		Preload("Owner", publicUserColumns).
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&videos).Error
	return videos, total, err
}

func (r *videoRepository) publishedFilter(db *gorm.DB, q VideoListQuery) *gorm.DB {
	db = db.Where("videos.is_published = ?", true)
	if query := strings.TrimSpace(q.Query); query != "" {
		db = db.Where("LOWER(videos.title) LIKE ?", "%"+escapeLike(strings.ToLower(query))+"%")
	}
	if q.OwnerID != 0 {
		db = db.Where("videos.owner_id = ?", q.OwnerID)
	}
	return db
}

// videoOrder 排序字段不在白名单里就按创建时间；再按id兜底，保证翻页稳定
func videoOrder(db *gorm.DB, sortBy, sortType string) *gorm.DB {
	column, ok := videoSortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	desc := !strings.EqualFold(sortType, "asc")
	return db.Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Table: "videos", Name: column}, Desc: desc},
		{Column: clause.Column{Table: "videos", Name: "id"}, Desc: desc},
	}})
}

// ListByOwner 作者自己的全部视频，包括未发布的
func (r *videoRepository) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) Update(ctx context.Context, videoID uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", videoID).Updates(fields).Error
}

// TogglePublished 原子取反：UPDATE `videos` SET `is_published` = NOT is_published WHERE id = ?
func (r *videoRepository) TogglePublished(ctx context.Context, videoID uint64) error {
	return r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ?", videoID).
		UpdateColumn("is_published", gorm.Expr("NOT is_published")).Error
}

func (r *videoRepository) SoftDelete(ctx context.Context, videoID uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Video{}, videoID).Error
}

// 频道数据一条SQL搞定，totalLikes只算对本频道视频的点赞
const channelStatsSQL = `
SELECT
	(SELECT COUNT(*) FROM videos v WHERE v.owner_id = @owner AND v.deleted_at IS NULL) AS total_videos,
	(SELECT COALESCE(SUM(v.views), 0) FROM videos v WHERE v.owner_id = @owner AND v.deleted_at IS NULL) AS total_views,
	(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = @owner) AS total_subscribers,
	(SELECT COUNT(*) FROM likes l JOIN videos v ON v.id = l.target_id
		WHERE l.target_type = @video AND v.owner_id = @owner AND v.deleted_at IS NULL) AS total_likes`

func (r *videoRepository) ChannelStats(ctx context.Context, ownerID uint64) (*ChannelStats, error) {
	var stats ChannelStats
	err := r.db.WithContext(ctx).
		Raw(channelStatsSQL, map[string]interface{}{"owner": ownerID, "video": model.LikeTargetVideo}).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// 返回存储单个视频信息的字符串Key
func (r *videoRepository) keyVideoInfo(videoID uint64) string {
	return fmt.Sprintf("video:info:%d", videoID)
}

// 从Redis缓存中获取单个Video信息：1、利用VideoID组装key 2、拿key去rdb中寻找videoJSON 3、利用json.Unmarshal将拿到的videoJSON反序列化
func (r *videoRepository) GetVideoCache(ctx context.Context, videoID uint64) (*model.Video, error) {
	if r.rdb == nil {
		return nil, nil
	}
	videoJSON, err := r.rdb.Get(ctx, r.keyVideoInfo(videoID)).Result()
	if err == redis.Nil {
		return nil, nil // 如果缓存不存在，但是Redis正常工作
	} else if err != nil {
		return nil, err // Redis本身出错了
	}
	var video model.Video
	if err := json.Unmarshal([]byte(videoJSON), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// 将单个视频信息存入Redis缓存：1、序列化成JSON 2、过期时间加随机数防止缓存雪崩 3、SET
func (r *videoRepository) SetVideoCache(ctx context.Context, video *model.Video) error {
	if r.rdb == nil {
		return nil
	}
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return err
	}
	expiration := time.Minute*5 + time.Duration(rand.Intn(60))*time.Second
	return r.rdb.Set(ctx, r.keyVideoInfo(video.ID), videoJSON, expiration).Err()
}

// 修改、发布状态切换、删除之后都要删缓存
func (r *videoRepository) DelVideoCache(ctx context.Context, videoID uint64) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Del(ctx, r.keyVideoInfo(videoID)).Err()
}
