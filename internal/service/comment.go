package service

import (
	"errors"

	"VidTube/internal/apperr"
	"VidTube/internal/data"
	"VidTube/internal/dto"
	"VidTube/internal/model"
	"VidTube/internal/query"
	"VidTube/internal/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	// GetComments 评论页聚合：评论本体 + 每条的点赞数和“我赞过没”
	GetComments(videoID, viewerID uint64, page, limit int) (query.Page[dto.CommentResponse], error)
	CreateComment(userID, videoID uint64, content string) (*model.Comment, error)
	UpdateComment(userID, commentID uint64, content string) (*model.Comment, error)
	// DeleteComment 删除评论并级联删除它的点赞，两步在同一个事务里
	DeleteComment(userID, commentID uint64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	uow         data.UnitOfWork
}

func NewCommentService(commentRepo repository.CommentRepository, likeRepo repository.LikeRepository, videoRepo repository.VideoRepository, uow data.UnitOfWork) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		uow:         uow,
	}
}

// 评论列表：1、确认视频存在 2、查评论页 3、批量查点赞数据 4、在内存中拼装
func (s *commentService) GetComments(videoID, viewerID uint64, page, limit int) (query.Page[dto.CommentResponse], error) {
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return query.Page[dto.CommentResponse]{}, apperr.NotFound("视频不存在")
		}
		return query.Page[dto.CommentResponse]{}, err
	}

	commentPage, err := s.commentRepo.FindPageByVideo(videoID, page, limit)
	if err != nil {
		return query.Page[dto.CommentResponse]{}, err
	}

	// 收集本页评论ID，点赞数据一次性批量查出，避免N+1
	commentIDs := make([]uint64, 0, len(commentPage.Docs))
	for _, c := range commentPage.Docs {
		commentIDs = append(commentIDs, c.ID)
	}

	likeCounts, err := s.likeRepo.CountsByCommentIDs(commentIDs)
	if err != nil {
		return query.Page[dto.CommentResponse]{}, err
	}
	likedSet, err := s.likeRepo.LikedCommentIDs(viewerID, commentIDs)
	if err != nil {
		return query.Page[dto.CommentResponse]{}, err
	}

	return dto.ToCommentPage(commentPage, likeCounts, likedSet), nil
}

func (s *commentService) CreateComment(userID, videoID uint64, content string) (*model.Comment, error) {
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("视频不存在")
		}
		return nil, err
	}

	newComment := &model.Comment{
		UserID:  userID,
		VideoID: videoID,
		Content: content,
	}
	if err := s.commentRepo.Create(newComment); err != nil {
		return nil, err
	}
	// 创建成功后带着作者信息再查出来
	return s.commentRepo.FindByID(newComment.ID)
}

func (s *commentService) UpdateComment(userID, commentID uint64, content string) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("评论不存在")
		}
		return nil, err
	}
	if comment.UserID != userID {
		return nil, apperr.Forbidden("只有评论作者本人可以编辑")
	}

	if err := s.commentRepo.UpdateContent(commentID, content); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByID(commentID)
}

// 删评论：评论和它的点赞要么一起消失，要么一起留下
func (s *commentService) DeleteComment(userID, commentID uint64) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("评论不存在")
		}
		return err
	}
	if comment.UserID != userID {
		return apperr.Forbidden("只有评论作者本人可以删除")
	}

	return s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if err := repos.CommentRepo.Delete(commentID); err != nil {
			return err
		}
		return repos.LikeRepo.DeleteAllByCommentID(commentID)
	})
}
