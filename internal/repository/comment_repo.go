package repository

import (
	"VidTube/internal/model"
	"VidTube/internal/query"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	// FindByID 顺便把作者Preload出来
	FindByID(commentID uint64) (*model.Comment, error)
	// 分页获取一个视频的评论，最新的在前
	FindPageByVideo(videoID uint64, page, limit int) (query.Page[model.Comment], error)
	UpdateContent(commentID uint64, content string) error
	Delete(commentID uint64) error

	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 commentRepository 实例
func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) FindByID(commentID uint64) (*model.Comment, error) {
	var result model.Comment
	err := r.db.Preload("User").First(&result, commentID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// 评论列表固定按时间倒序，id同方向兜底保证翻页稳定
func (r *commentRepository) FindPageByVideo(videoID uint64, page, limit int) (query.Page[model.Comment], error) {
	base := r.db.Model(&model.Comment{}).Where("video_id = ?", videoID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return query.Page[model.Comment]{}, err
	}

	var comments []model.Comment
	err := r.db.Model(&model.Comment{}).
		Where("video_id = ?", videoID).
		Scopes(query.OrderStable("created_at", "desc"), query.Paginate(page, limit)).
		Preload("User").
		Find(&comments).Error
	if err != nil {
		return query.Page[model.Comment]{}, err
	}

	return query.NewPage(comments, total, page, limit), nil
}

func (r *commentRepository) UpdateContent(commentID uint64, content string) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", commentID).
		Update("content", content).Error
}

func (r *commentRepository) Delete(commentID uint64) error {
	return r.db.Delete(&model.Comment{}, commentID).Error
}
