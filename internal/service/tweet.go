package service

import (
	"errors"

	"VidTube/internal/apperr"
	"VidTube/internal/model"
	"VidTube/internal/repository"

	"gorm.io/gorm"
)

type TweetService interface {
	CreateTweet(userID uint64, content string) (*model.Tweet, error)
	GetUserTweets(userID uint64) ([]model.Tweet, error)
}

type tweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository) TweetService {
	return &tweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

func (s *tweetService) CreateTweet(userID uint64, content string) (*model.Tweet, error) {
	newTweet := &model.Tweet{
		UserID:  userID,
		Content: content,
	}
	if err := s.tweetRepo.Create(newTweet); err != nil {
		return nil, err
	}
	return s.tweetRepo.FindByID(newTweet.ID)
}

func (s *tweetService) GetUserTweets(userID uint64) ([]model.Tweet, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("用户不存在")
		}
		return nil, err
	}
	return s.tweetRepo.FindByUser(userID)
}
