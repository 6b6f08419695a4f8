package model

type User struct {
	BaseModel
	// 用户名统一存小写，注册时转换，保证大小写不敏感的唯一性
	Username string `gorm:"unique;not null"`
	Email    string `gorm:"unique;not null"`
	FullName string `gorm:"not null"`
	// bcrypt哈希，任何对外响应都不允许携带
	Password string `gorm:"not null"`

	// 媒体资源都是一对URL+删除句柄，句柄用于向媒体存储发起删除
	AvatarURL string `gorm:"not null"`
	AvatarKey string `gorm:"not null"`
	CoverURL  string
	CoverKey  string

	// 服务端保存的当前有效刷新令牌，轮换或登出后旧值立即失效
	RefreshToken string
}

func (User) TableName() string {
	return "users"
}
