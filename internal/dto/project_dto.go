package dto

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title       string  `json:"title" binding:"required,max=150"`
	Description *string `json:"description" binding:"omitempty,max=255"`
	Type        string  `json:"type" binding:"required,oneof=backend frontend ios android"`
}

// UpdateProjectRequest 更新项目请求
// author 创建后不可变更
type UpdateProjectRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=150"`
	Description *string `json:"description" binding:"omitempty,max=255"`
	Type        *string `json:"type" binding:"omitempty,oneof=backend frontend ios android"`
}

// ProjectResponse 项目响应
type ProjectResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	Type        string        `json:"type"`
	Author      *UserResponse `json:"author,omitempty"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
}
