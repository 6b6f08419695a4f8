package model

// 观看历史：唯一索引负责去重，重复观看不改变首次观看的位置
type WatchHistory struct {
	BaseModel
	UserID  uint64 `gorm:"not null;uniqueIndex:idx_user_watch"`
	VideoID uint64 `gorm:"not null;uniqueIndex:idx_user_watch"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
