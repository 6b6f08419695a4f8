package repository

import (
	"VidTube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 订阅仓库：频道主页聚合需要的两个方向的计数都在这里
type SubscriptionRepository interface {
	Create(subscriberID, channelID uint64) error
	Delete(subscriberID, channelID uint64) (bool, error)
	Exists(subscriberID, channelID uint64) (bool, error)
	// 有多少人订阅了这个频道
	CountSubscribers(channelID uint64) (int64, error)
	// 这个用户订阅了多少频道
	CountSubscribedTo(subscriberID uint64) (int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(subscriberID, channelID uint64) error {
	sub := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(sub).Error
}

func (r *subscriptionRepository) Delete(subscriberID, channelID uint64) (bool, error) {
	result := r.db.Exec("DELETE FROM subscriptions WHERE subscriber_id = ? AND channel_id = ?",
		subscriberID, channelID)
	return result.RowsAffected > 0, result.Error
}

func (r *subscriptionRepository) Exists(subscriberID, channelID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) CountSubscribers(channelID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) CountSubscribedTo(subscriberID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}
