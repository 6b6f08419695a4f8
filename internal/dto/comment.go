package dto

import (
	"time"

	"VidTube/internal/model"
	"VidTube/internal/query"
)

type CommentResponse struct {
	ID         uint64    `json:"id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	LikesCount int64     `json:"likesCount"`
	IsLiked    bool      `json:"isLiked"`
	Author     OwnerInfo `json:"author"`
}

func ToCommentResponse(comment *model.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	// 安全地填充作者信息，没Preload到就只带ID
	if comment.User.ID != 0 {
		resp.Author = ToOwnerInfo(&comment.User)
	} else {
		resp.Author.ID = comment.UserID
	}
	return resp
}

// ToCommentPage 把评论页和批量查出来的点赞数据拼在一起
// likeCounts和likedSet都以commentID为键，缺项视为0/false
func ToCommentPage(page query.Page[model.Comment], likeCounts map[uint64]int64, likedSet map[uint64]bool) query.Page[CommentResponse] {
	docs := make([]CommentResponse, 0, len(page.Docs))
	for i := range page.Docs {
		resp := ToCommentResponse(&page.Docs[i])
		resp.LikesCount = likeCounts[resp.ID]
		resp.IsLiked = likedSet[resp.ID]
		docs = append(docs, resp)
	}
	return query.Page[CommentResponse]{
		Docs:       docs,
		TotalDocs:  page.TotalDocs,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}
