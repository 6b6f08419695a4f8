package model

type Tweet struct {
	BaseModel
	UserID  uint64 `gorm:"not null;index"`
	Content string `gorm:"type:text;not null"`

	User User `gorm:"foreignKey:UserID"`
}

func (Tweet) TableName() string {
	return "tweets"
}
