package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"VidTube/internal/apperr"
	"VidTube/internal/dto"
	"VidTube/internal/model"
	"VidTube/internal/query"
	"VidTube/internal/repository"
	"VidTube/pkg/logger"
	"VidTube/pkg/storage"

	"github.com/streadway/amqp"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	// 遵循：项目名.业务领域.实体/功能
	QueueView = "vidtube.view.queue"
)

// ViewMessage 详情页读取成功后投递的观看事件
// ViewerID为0表示未登录访客，消费者只加播放量不记历史
type ViewMessage struct {
	VideoID  uint64 `json:"video_id"`
	ViewerID uint64 `json:"viewer_id"`
}

// PublishInput 发布视频入参，两个Path都是本地临时文件
type PublishInput struct {
	OwnerID       uint64
	Title         string
	Description   string
	Duration      float64
	VideoPath     string
	ThumbnailPath string
}

type VideoService interface {
	Publish(ctx context.Context, input PublishInput) (*model.Video, error)
	GetFeed(opts repository.FeedOptions) (query.Page[model.Video], error)
	// GetVideoDetail 聚合详情页，并触发观看副作用（播放量+1、写观看历史）
	// 副作用只在主查询成功后发生，且失败不影响本次读取
	GetVideoDetail(ctx context.Context, videoID, viewerID uint64) (dto.VideoDetailResponse, error)
	// UpdateVideo 元数据+可选换封面，只有作者本人能改
	UpdateVideo(ctx context.Context, videoID, editorID uint64, title, description, thumbnailPath string) (*model.Video, error)
}

type videoService struct {
	sf singleflight.Group

	videoRepo    repository.VideoRepository
	likeRepo     repository.LikeRepository
	subRepo      repository.SubscriptionRepository
	media        storage.MediaStore
	rabbitMQConn *amqp.Connection
}

func NewVideoService(videoRepo repository.VideoRepository, likeRepo repository.LikeRepository, subRepo repository.SubscriptionRepository, media storage.MediaStore, rabbitMQConn *amqp.Connection) VideoService {
	if rabbitMQConn != nil {
		ch, err := rabbitMQConn.Channel()
		if err != nil {
			panic("无法打开RabbitMQ Channel")
		}
		defer ch.Close()
		// 队列声明是幂等的，重复声明不报错
		if _, err := ch.QueueDeclare(QueueView, true, false, false, false, nil); err != nil {
			panic("无法声明观看事件队列")
		}
	}

	return &videoService{
		videoRepo:    videoRepo,
		likeRepo:     likeRepo,
		subRepo:      subRepo,
		media:        media,
		rabbitMQConn: rabbitMQConn,
	}
}

// 发布流程：传视频→传封面→落库，任何一步失败都要把前面传上去的删掉
func (s *videoService) Publish(ctx context.Context, input PublishInput) (*model.Video, error) {
	videoAsset, err := s.media.Upload(ctx, input.VideoPath)
	if err != nil {
		return nil, apperr.BadRequest("视频上传失败")
	}

	thumbAsset, err := s.media.Upload(ctx, input.ThumbnailPath)
	if err != nil {
		s.cleanupAsset(ctx, videoAsset.Key)
		return nil, apperr.BadRequest("封面上传失败")
	}

	newVideo := &model.Video{
		OwnerID:      input.OwnerID,
		Title:        input.Title,
		Description:  input.Description,
		Duration:     input.Duration,
		VideoURL:     videoAsset.URL,
		VideoKey:     videoAsset.Key,
		ThumbnailURL: thumbAsset.URL,
		ThumbnailKey: thumbAsset.Key,
		IsPublished:  true,
	}

	if err := s.videoRepo.Create(newVideo); err != nil {
		s.cleanupAsset(ctx, videoAsset.Key)
		s.cleanupAsset(ctx, thumbAsset.Key)
		return nil, err
	}

	return newVideo, nil
}

func (s *videoService) cleanupAsset(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.media.Delete(ctx, key); err != nil {
		logger.Log.WithError(err).WithField("asset_key", key).Warn("媒体资源清理失败")
	}
}

func (s *videoService) GetFeed(opts repository.FeedOptions) (query.Page[model.Video], error) {
	return s.videoRepo.FindPage(opts)
}

// 详情页聚合：视频本体 + 点赞统计 + 作者频道统计
// 主查询走缓存+singleflight，防止热门视频缓存失效时打穿数据库
func (s *videoService) GetVideoDetail(ctx context.Context, videoID, viewerID uint64) (dto.VideoDetailResponse, error) {
	video, err := s.getVideo(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.VideoDetailResponse{}, apperr.NotFound("视频不存在")
		}
		return dto.VideoDetailResponse{}, err
	}

	likesCount, err := s.likeRepo.CountVideoLikes(videoID)
	if err != nil {
		return dto.VideoDetailResponse{}, err
	}

	isLiked := false
	if viewerID != 0 {
		isLiked, err = s.likeRepo.HasVideoLike(viewerID, videoID)
		if err != nil {
			return dto.VideoDetailResponse{}, err
		}
	}

	subscribers, err := s.subRepo.CountSubscribers(video.OwnerID)
	if err != nil {
		return dto.VideoDetailResponse{}, err
	}
	isSubscribed := false
	if viewerID != 0 {
		isSubscribed, err = s.subRepo.Exists(viewerID, video.OwnerID)
		if err != nil {
			return dto.VideoDetailResponse{}, err
		}
	}

	// 主查询已经成功，观看副作用从这里开始；投递失败只记日志
	s.publishViewEvent(ViewMessage{VideoID: videoID, ViewerID: viewerID})

	return dto.ToVideoDetailResponse(video, likesCount, isLiked, subscribers, isSubscribed), nil
}

// getVideo 缓存未命中时用singleflight合并同一视频的并发回源
func (s *videoService) getVideo(videoID uint64) (*model.Video, error) {
	video, err := s.videoRepo.GetVideoCache(videoID)
	if err == nil && video != nil {
		return video, nil
	}

	key := fmt.Sprintf("get_video_%d", videoID)
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.videoRepo.FindByID(videoID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Video), nil
}

// publishViewEvent 尽力而为：MQ不可用或投递失败都不能影响读取本身
func (s *videoService) publishViewEvent(msg ViewMessage) {
	if s.rabbitMQConn == nil {
		return
	}
	ch, err := s.rabbitMQConn.Channel()
	if err != nil {
		logger.Log.WithError(err).Warn("观看事件投递失败：无法打开Channel")
		return
	}
	defer ch.Close()

	body, err := json.Marshal(msg)
	if err != nil {
		logger.Log.WithError(err).Warn("观看事件序列化失败")
		return
	}

	err = ch.Publish(
		"",        // exchange默认交换机
		QueueView, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		logger.Log.WithError(err).
			WithField("video_id", msg.VideoID).
			Warn("观看事件投递失败")
	}
}

func (s *videoService) UpdateVideo(ctx context.Context, videoID, editorID uint64, title, description, thumbnailPath string) (*model.Video, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("视频不存在")
		}
		return nil, err
	}
	if video.OwnerID != editorID {
		return nil, apperr.Forbidden("只有作者本人可以编辑视频")
	}

	fields := map[string]interface{}{}
	if title != "" {
		fields["title"] = title
	}
	if description != "" {
		fields["description"] = description
	}

	oldThumbKey := ""
	if thumbnailPath != "" {
		asset, err := s.media.Upload(ctx, thumbnailPath)
		if err != nil {
			return nil, apperr.BadRequest("封面上传失败")
		}
		fields["thumbnail_url"] = asset.URL
		fields["thumbnail_key"] = asset.Key
		oldThumbKey = video.ThumbnailKey
	}

	if len(fields) == 0 {
		return nil, apperr.BadRequest("没有需要更新的字段")
	}

	if err := s.videoRepo.Updates(videoID, fields); err != nil {
		if key, ok := fields["thumbnail_key"].(string); ok {
			s.cleanupAsset(ctx, key)
		}
		return nil, err
	}

	// 新封面已生效，旧封面释放掉
	s.cleanupAsset(ctx, oldThumbKey)

	return s.videoRepo.FindByID(videoID)
}
