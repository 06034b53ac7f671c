package dto

// SignupRequest 注册请求
// 密码与确认密码不一致返回400
type SignupRequest struct {
	Username        string  `json:"username" binding:"required,max=50,alphanum"`
	Password        string  `json:"password" binding:"required,min=8,max=128"`
	PasswordConfirm string  `json:"password_confirm" binding:"required,eqfield=Password"`
	Email           *string `json:"email" binding:"omitempty,email,max=100"`
	FirstName       *string `json:"first_name" binding:"omitempty,max=100"`
	LastName        *string `json:"last_name" binding:"omitempty,max=100"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	AuthType string `json:"auth_type" binding:"required,oneof=ldap local"` // ldap or local
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	User         *UserInfo `json:"user"`
}

// UserInfo 当前认证用户信息
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	AuthType string `json:"auth_type"`
}

// RefreshTokenRequest 刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LDAPUserInfo LDAP用户属性
type LDAPUserInfo struct {
	Username  string
	Email     *string
	FirstName *string
	LastName  *string
}
