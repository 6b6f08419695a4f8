package service

import (
	"VidTube/internal/repository"
)

// ViewEventHandler 观看事件的落库逻辑，和MQ的收发解耦
// 消费进程只负责取消息和ack/nack，具体怎么写库在这里
type ViewEventHandler struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
}

func NewViewEventHandler(videoRepo repository.VideoRepository, userRepo repository.UserRepository) *ViewEventHandler {
	return &ViewEventHandler{videoRepo: videoRepo, userRepo: userRepo}
}

// Handle 播放量+1是原子UPDATE，观看历史靠唯一索引去重，重复投递是安全的
func (h *ViewEventHandler) Handle(msg ViewMessage) error {
	if err := h.videoRepo.IncrementViews(msg.VideoID); err != nil {
		return err
	}
	// 未登录访客只计播放量
	if msg.ViewerID == 0 {
		return nil
	}
	return h.userRepo.AppendWatchHistory(msg.ViewerID, msg.VideoID)
}
