package handler

import (
	"net/http"

	"VidTube/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subService service.SubscriptionService
}

func NewSubscriptionHandler(subService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subService: subService}
}

func (h *SubscriptionHandler) ToggleSubscription(c *gin.Context) {
	channelID, ok := parseIDParam(c, "channelId")
	if !ok {
		sendErrorResponse(c, http.StatusBadRequest, "无效的频道ID")
		return
	}

	subscribed, err := h.subService.ToggleSubscription(currentUserID(c), channelID)
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, gin.H{"isSubscribed": subscribed}, "操作成功")
}
