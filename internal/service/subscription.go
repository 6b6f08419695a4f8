package service

import (
	"errors"

	"VidTube/internal/apperr"
	"VidTube/internal/repository"

	"gorm.io/gorm"
)

type SubscriptionService interface {
	// ToggleSubscription 返回操作后的订阅状态
	ToggleSubscription(subscriberID, channelID uint64) (bool, error)
}

type subscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) SubscriptionService {
	return &subscriptionService{subRepo: subRepo, userRepo: userRepo}
}

func (s *subscriptionService) ToggleSubscription(subscriberID, channelID uint64) (bool, error) {
	if subscriberID == channelID {
		return false, apperr.BadRequest("不能订阅自己的频道")
	}
	if _, err := s.userRepo.FindByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("频道不存在")
		}
		return false, err
	}

	deleted, err := s.subRepo.Delete(subscriberID, channelID)
	if err != nil {
		return false, err
	}
	if deleted {
		return false, nil
	}
	if err := s.subRepo.Create(subscriberID, channelID); err != nil {
		return false, err
	}
	return true, nil
}
