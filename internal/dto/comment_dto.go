package dto

// CreateCommentRequest 创建评论请求
type CreateCommentRequest struct {
	Description string `json:"description" binding:"required,max=320"`
}

// UpdateCommentRequest 更新评论请求
// author 与 created_time 不可变更
type UpdateCommentRequest struct {
	Description string `json:"description" binding:"required,max=320"`
}

// CommentResponse 评论响应
type CommentResponse struct {
	ID          int64         `json:"id"`
	IssueID     int64         `json:"issue_id"`
	Description string        `json:"description"`
	Author      *UserResponse `json:"author,omitempty"`
	CreatedTime string        `json:"created_time"`
	UpdatedAt   string        `json:"updated_at"`
}
