package repository

import (
	"VidTube/internal/model"

	"gorm.io/gorm"
)

type TweetRepository interface {
	Create(tweet *model.Tweet) error
	FindByID(tweetID uint64) (*model.Tweet, error)
	FindByUser(userID uint64) ([]model.Tweet, error)
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(tweet *model.Tweet) error {
	return r.db.Create(tweet).Error
}

func (r *tweetRepository) FindByID(tweetID uint64) (*model.Tweet, error) {
	var result model.Tweet
	err := r.db.Preload("User").First(&result, tweetID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *tweetRepository) FindByUser(userID uint64) ([]model.Tweet, error) {
	var tweets []model.Tweet
	err := r.db.Preload("User").
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&tweets).Error
	return tweets, err
}
