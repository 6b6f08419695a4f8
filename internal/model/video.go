package model

type Video struct {
	BaseModel
	OwnerID     uint64 `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`

	VideoURL     string `gorm:"not null"`
	VideoKey     string `gorm:"not null"`
	ThumbnailURL string `gorm:"not null"`
	ThumbnailKey string `gorm:"not null"`

	// 时长单位是秒，上传成功后写入
	Duration float64 `gorm:"default:0"`
	// 播放量只增不减，详情页每次读取+1
	Views uint64 `gorm:"default:0"`
	// 只有已发布的视频才会进入feed流
	IsPublished bool `gorm:"default:true;index"`

	Owner User `gorm:"foreignKey:OwnerID;references:ID"`
}

func (Video) TableName() string {
	return "videos"
}
