package model

// 订阅关系边：subscriber订阅了channel（channel就是被当作频道看待的用户）
type Subscription struct {
	BaseModel
	SubscriberID uint64 `gorm:"not null;uniqueIndex:idx_subscriber_channel"`
	ChannelID    uint64 `gorm:"not null;uniqueIndex:idx_subscriber_channel;index"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
