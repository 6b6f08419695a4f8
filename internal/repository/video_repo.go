package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"VidTube/internal/model"
	"VidTube/internal/query"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// FeedOptions 是feed流查询的全部入参，零值字段表示不启用该过滤
type FeedOptions struct {
	Query    string
	OwnerID  uint64
	SortBy   string
	SortType string
	Page     int
	Limit    int
}

type VideoRepository interface {
	Create(video *model.Video) error
	// FindByID 先查缓存再查库，命中则不落库
	FindByID(videoID uint64) (*model.Video, error)
	// FindPage 组装聚合管道：过滤→匹配→排序→分页，总数随页一起返回
	FindPage(opts FeedOptions) (query.Page[model.Video], error)
	Updates(videoID uint64, fields map[string]interface{}) error
	// IncrementViews 原子+1，不经过读-改-写
	IncrementViews(videoID uint64) error

	GetVideoCache(videoID uint64) (*model.Video, error)
	SetVideoCache(video *model.Video) error
	InvalidateVideoCache(videoID uint64) error

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewVideoRepository(db *gorm.DB, rdb *redis.Client) VideoRepository {
	return &videoRepository{db: db, rdb: rdb}
}

// WithTx 返回绑定到事务的副本，事务里不碰Redis
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{db: tx}
}

func (r *videoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

func (r *videoRepository) FindByID(videoID uint64) (*model.Video, error) {
	// 1. 先从缓存读
	video, err := r.GetVideoCache(videoID)
	if err == nil && video != nil {
		return video, nil
	}

	// 2. 缓存未命中，从数据库读
	var dbVideo model.Video
	err = r.db.Preload("Owner").First(&dbVideo, videoID).Error
	if err != nil {
		return nil, err
	}

	// 3. 写回缓存，方便下次读取
	_ = r.SetVideoCache(&dbVideo)

	return &dbVideo, nil
}

// feed流查询：已发布过滤是固定管道段，作者过滤和文本匹配按需叠加
// 总数和当前页是两条独立查询，并发写入下不保证快照一致（store是唯一串行点）
func (r *videoRepository) FindPage(opts FeedOptions) (query.Page[model.Video], error) {
	scopes := []func(*gorm.DB) *gorm.DB{query.Published()}
	if opts.OwnerID != 0 {
		scopes = append(scopes, query.OwnedBy(opts.OwnerID))
	}
	if opts.Query != "" {
		scopes = append(scopes, query.MatchText(opts.Query))
	}

	var total int64
	if err := r.db.Model(&model.Video{}).Scopes(scopes...).Count(&total).Error; err != nil {
		return query.Page[model.Video]{}, err
	}

	column, direction := query.NormalizeSort(opts.SortBy, opts.SortType)
	pageScopes := append(scopes,
		query.OrderStable(column, direction),
		query.Paginate(opts.Page, opts.Limit),
	)

	var videos []model.Video
	err := r.db.Model(&model.Video{}).
		Scopes(pageScopes...).
		Preload("Owner").
		Find(&videos).Error
	if err != nil {
		return query.Page[model.Video]{}, err
	}

	return query.NewPage(videos, total, opts.Page, opts.Limit), nil
}

func (r *videoRepository) Updates(videoID uint64, fields map[string]interface{}) error {
	err := r.db.Model(&model.Video{}).Where("id = ?", videoID).Updates(fields).Error
	if err != nil {
		return err
	}
	// 数据变了，旧缓存必须作废
	_ = r.InvalidateVideoCache(videoID)
	return nil
}

func (r *videoRepository) IncrementViews(videoID uint64) error {
	// UPDATE `videos` SET `views` = `views` + 1 WHERE id = ?
	return r.db.Model(&model.Video{}).Where("id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *videoRepository) keyVideoInfo(videoID uint64) string {
	return fmt.Sprintf("video:info:%d", videoID)
}

// 从Redis缓存中获取单个Video信息，缓存不存在时返回(nil, nil)
func (r *videoRepository) GetVideoCache(videoID uint64) (*model.Video, error) {
	if r.rdb == nil {
		return nil, nil
	}
	key := r.keyVideoInfo(videoID)
	videoJSON, err := r.rdb.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	var video model.Video
	if err := json.Unmarshal([]byte(videoJSON), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// 将单个视频信息存入Redis缓存，过期时间加随机抖动防止缓存雪崩
func (r *videoRepository) SetVideoCache(video *model.Video) error {
	if r.rdb == nil {
		return nil
	}
	key := r.keyVideoInfo(video.ID)
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return err
	}
	expiration := time.Minute*5 + time.Duration(rand.Intn(60))*time.Second
	return r.rdb.Set(context.Background(), key, videoJSON, expiration).Err()
}

func (r *videoRepository) InvalidateVideoCache(videoID uint64) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Del(context.Background(), r.keyVideoInfo(videoID)).Err()
}
