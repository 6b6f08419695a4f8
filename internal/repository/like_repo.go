package repository

import (
	"VidTube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 点赞仓库：三类目标（视频/评论/推文）各自一组增删查原语
// toggle的判断逻辑在service层，这里只提供靠数据库原子性兜底的单步操作
type LikeRepository interface {
	// Create系列用OnConflict DoNothing，并发重复点赞会塌缩成一次
	CreateVideoLike(userID, videoID uint64) error
	// Delete系列返回是否真的删掉了行，用来区分“取消点赞”和“本来就没赞”
	DeleteVideoLike(userID, videoID uint64) (bool, error)
	HasVideoLike(userID, videoID uint64) (bool, error)
	CountVideoLikes(videoID uint64) (int64, error)

	CreateCommentLike(userID, commentID uint64) error
	DeleteCommentLike(userID, commentID uint64) (bool, error)
	// 评论列表页的批量查询：一批评论的点赞数、当前用户赞过哪些
	CountsByCommentIDs(commentIDs []uint64) (map[uint64]int64, error)
	LikedCommentIDs(userID uint64, commentIDs []uint64) (map[uint64]bool, error)
	// 删评论时级联删除它的所有点赞
	DeleteAllByCommentID(commentID uint64) error

	CreateTweetLike(userID, tweetID uint64) error
	DeleteTweetLike(userID, tweetID uint64) (bool, error)

	// 某用户赞过的视频，按点赞时间倒序，带作者摘要
	FindLikedVideos(userID uint64) ([]model.Video, error)

	WithTx(tx *gorm.DB) LikeRepository
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &likeRepository{db: tx}
}

func (r *likeRepository) CreateVideoLike(userID, videoID uint64) error {
	like := &model.Like{UserID: userID, VideoID: &videoID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error
}

// gorm对指针列的Where翻译不可靠，删点赞直接写SQL（之前在这上面踩过坑）
func (r *likeRepository) DeleteVideoLike(userID, videoID uint64) (bool, error) {
	result := r.db.Exec("DELETE FROM likes WHERE user_id = ? AND video_id = ?", userID, videoID)
	return result.RowsAffected > 0, result.Error
}

func (r *likeRepository) HasVideoLike(userID, videoID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) CountVideoLikes(videoID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

func (r *likeRepository) CreateCommentLike(userID, commentID uint64) error {
	like := &model.Like{UserID: userID, CommentID: &commentID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error
}

func (r *likeRepository) DeleteCommentLike(userID, commentID uint64) (bool, error) {
	result := r.db.Exec("DELETE FROM likes WHERE user_id = ? AND comment_id = ?", userID, commentID)
	return result.RowsAffected > 0, result.Error
}

// 一次性查出一批评论各自的点赞数，避免逐条回表
func (r *likeRepository) CountsByCommentIDs(commentIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}
	type row struct {
		CommentID uint64
		Total     int64
	}
	var rows []row
	err := r.db.Model(&model.Like{}).
		Select("comment_id, COUNT(*) as total").
		Where("comment_id IN (?)", commentIDs).
		Group("comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rw := range rows {
		counts[rw.CommentID] = rw.Total
	}
	return counts, nil
}

// 当前用户在这批评论里赞过哪些，返回集合便于O(1)判断
func (r *likeRepository) LikedCommentIDs(userID uint64, commentIDs []uint64) (map[uint64]bool, error) {
	liked := make(map[uint64]bool, len(commentIDs))
	if userID == 0 || len(commentIDs) == 0 {
		return liked, nil
	}
	var ids []uint64
	err := r.db.Model(&model.Like{}).
		Where("user_id = ? AND comment_id IN (?)", userID, commentIDs).
		Pluck("comment_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *likeRepository) DeleteAllByCommentID(commentID uint64) error {
	return r.db.Exec("DELETE FROM likes WHERE comment_id = ?", commentID).Error
}

func (r *likeRepository) CreateTweetLike(userID, tweetID uint64) error {
	like := &model.Like{UserID: userID, TweetID: &tweetID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error
}

func (r *likeRepository) DeleteTweetLike(userID, tweetID uint64) (bool, error) {
	result := r.db.Exec("DELETE FROM likes WHERE user_id = ? AND tweet_id = ?", userID, tweetID)
	return result.RowsAffected > 0, result.Error
}

// 点赞时间是likes表的created_at，排序键在join的另一侧，所以手写Order
func (r *likeRepository) FindLikedVideos(userID uint64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Model(&model.Video{}).
		Joins("JOIN likes ON likes.video_id = videos.id").
		Where("likes.user_id = ? AND likes.deleted_at IS NULL", userID).
		Order("likes.created_at desc, likes.id desc").
		Preload("Owner").
		Find(&videos).Error
	return videos, err
}
