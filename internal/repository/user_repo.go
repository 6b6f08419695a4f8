package repository

import (
	"VidTube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 用户仓库：注册、查找、字段更新，外加属于用户自己的观看历史
type UserRepository interface {
	Create(user *model.User) error
	FindByID(userID uint64) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	// 登录允许用户名或邮箱二选一
	FindByUsernameOrEmail(username, email string) (*model.User, error)
	// Updates 只更新给定的列，零值不会被误判
	Updates(userID uint64, fields map[string]interface{}) error

	// 观看历史去重追加：已看过的视频靠唯一索引静默跳过，不改变原有顺序
	AppendWatchHistory(userID, videoID uint64) error
	FindWatchHistory(userID uint64) ([]model.Video, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(userID uint64) (*model.User, error) {
	var result model.User
	err := r.db.First(&result, userID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// 用户名存库时已统一小写，这里按小写匹配即可做到大小写不敏感
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var result model.User
	err := r.db.Where("username = ?", username).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) FindByUsernameOrEmail(username, email string) (*model.User, error) {
	var result model.User
	err := r.db.Where("username = ? OR email = ?", username, email).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) Updates(userID uint64, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Updates(fields).Error
}

func (r *userRepository) AppendWatchHistory(userID, videoID uint64) error {
	entry := &model.WatchHistory{UserID: userID, VideoID: videoID}
	// 撞上唯一索引就什么都不做，重复观看不报错也不挪位置
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(entry).Error
}

// 按观看时间倒序返回历史里的视频，带上作者摘要
func (r *userRepository) FindWatchHistory(userID uint64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Model(&model.Video{}).
		Joins("JOIN watch_histories ON watch_histories.video_id = videos.id").
		Where("watch_histories.user_id = ? AND watch_histories.deleted_at IS NULL", userID).
		Order("watch_histories.created_at desc, watch_histories.id desc").
		Preload("Owner").
		Find(&videos).Error
	return videos, err
}
