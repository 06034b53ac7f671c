package dto

// CreateIssueRequest 创建问题请求
// assigned 必须是项目贡献者
type CreateIssueRequest struct {
	Title       string `json:"title" binding:"required,max=50"`
	Description string `json:"description" binding:"required,max=320"`
	Status      string `json:"status" binding:"omitempty,oneof=todo pending finished"`
	Tag         string `json:"tag" binding:"required,oneof=bug improvement task"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low average high"`
	AssignedID  *int64 `json:"assigned_id"`
}

// UpdateIssueRequest 更新问题请求
// author 与 created_time 不可变更
type UpdateIssueRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=50"`
	Description *string `json:"description" binding:"omitempty,max=320"`
	Status      *string `json:"status" binding:"omitempty,oneof=todo pending finished"`
	Tag         *string `json:"tag" binding:"omitempty,oneof=bug improvement task"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low average high"`
	AssignedID  *int64  `json:"assigned_id"`
}

// IssueResponse 问题响应
type IssueResponse struct {
	ID          int64         `json:"id"`
	ProjectID   int64         `json:"project_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Tag         string        `json:"tag"`
	Priority    string        `json:"priority"`
	Author      *UserResponse `json:"author,omitempty"`
	Assigned    *UserResponse `json:"assigned,omitempty"`
	CreatedTime string        `json:"created_time"`
	UpdatedAt   string        `json:"updated_at"`
}
