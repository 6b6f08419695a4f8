package service

import (
	"errors"

	"VidTube/internal/apperr"
	"VidTube/internal/model"
	"VidTube/internal/repository"

	"gorm.io/gorm"
)

// LikeService 三类目标的toggle共用一个套路：
// 删到了就是取消点赞，没删到就创建；唯一索引兜住并发下的重复创建
type LikeService interface {
	// 返回值是操作后的点赞状态
	ToggleVideoLike(userID, videoID uint64) (bool, error)
	ToggleCommentLike(userID, commentID uint64) (bool, error)
	ToggleTweetLike(userID, tweetID uint64) (bool, error)
	// 该用户赞过的全部视频，最新点赞在前
	GetLikedVideos(userID uint64) ([]model.Video, error)
}

type likeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

func NewLikeService(likeRepo repository.LikeRepository, videoRepo repository.VideoRepository, commentRepo repository.CommentRepository, tweetRepo repository.TweetRepository) LikeService {
	return &likeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

func (s *likeService) ToggleVideoLike(userID, videoID uint64) (bool, error) {
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("视频不存在")
		}
		return false, err
	}

	deleted, err := s.likeRepo.DeleteVideoLike(userID, videoID)
	if err != nil {
		return false, err
	}
	if deleted {
		return false, nil
	}
	if err := s.likeRepo.CreateVideoLike(userID, videoID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *likeService) ToggleCommentLike(userID, commentID uint64) (bool, error) {
	if _, err := s.commentRepo.FindByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("评论不存在")
		}
		return false, err
	}

	deleted, err := s.likeRepo.DeleteCommentLike(userID, commentID)
	if err != nil {
		return false, err
	}
	if deleted {
		return false, nil
	}
	if err := s.likeRepo.CreateCommentLike(userID, commentID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *likeService) ToggleTweetLike(userID, tweetID uint64) (bool, error) {
	if _, err := s.tweetRepo.FindByID(tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("推文不存在")
		}
		return false, err
	}

	deleted, err := s.likeRepo.DeleteTweetLike(userID, tweetID)
	if err != nil {
		return false, err
	}
	if deleted {
		return false, nil
	}
	if err := s.likeRepo.CreateTweetLike(userID, tweetID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *likeService) GetLikedVideos(userID uint64) ([]model.Video, error) {
	return s.likeRepo.FindLikedVideos(userID)
}
