package constants

// 认证相关
const (
	AuthTypeLocal = "local"
	AuthTypeLDAP  = "ldap"

	JWTTypeAccess  = "access"
	JWTTypeRefresh = "refresh"

	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "

	ContextUserKey = "user"
)

// 用户状态
const (
	StatusDisabled int8 = 0
	StatusEnabled  int8 = 1
)
