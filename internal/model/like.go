package model

// 一条Like只指向视频、评论、推文三者之一，另外两列为nil
// 联合唯一索引利用MySQL的查重能力保证同一用户对同一目标只能点赞一次
// （MySQL的唯一索引不约束含NULL的行，所以三类目标互不干扰）
type Like struct {
	BaseModel
	UserID    uint64  `gorm:"not null;uniqueIndex:idx_user_video;uniqueIndex:idx_user_comment;uniqueIndex:idx_user_tweet"`
	VideoID   *uint64 `gorm:"uniqueIndex:idx_user_video"`
	CommentID *uint64 `gorm:"uniqueIndex:idx_user_comment"`
	TweetID   *uint64 `gorm:"uniqueIndex:idx_user_tweet"`
}

func (Like) TableName() string {
	return "likes"
}
