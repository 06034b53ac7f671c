package dto

// CreateContributorRequest 添加贡献者请求
type CreateContributorRequest struct {
	UserID     int64  `json:"user_id" binding:"required"`
	Permission string `json:"permission" binding:"omitempty,oneof=read write delete"`
}

// UpdateContributorRequest 更新贡献者请求
// user 与 role 创建后均不可变更, 只有权限等级可由owner调整
type UpdateContributorRequest struct {
	Permission string `json:"permission" binding:"required,oneof=read write delete"`
}

// ContributorResponse 贡献者响应
type ContributorResponse struct {
	ID         int64         `json:"id"`
	ProjectID  int64         `json:"project_id"`
	UserID     int64         `json:"user_id"`
	Role       string        `json:"role"`
	Permission string        `json:"permission"`
	User       *UserResponse `json:"user,omitempty"`
	CreatedAt  string        `json:"created_at"`
}
