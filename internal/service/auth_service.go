package service

import (
	"errors"

	"softdesk/internal/dto"
	"softdesk/internal/model"
	"softdesk/internal/pkg/config"
	"softdesk/internal/pkg/crypto"
	"softdesk/internal/pkg/jwt"
	"softdesk/internal/repository"
	"softdesk/pkg/constants"
	pkgErrors "softdesk/pkg/responses"
)

type AuthService interface {
	Signup(req *dto.SignupRequest) (*dto.UserInfo, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(refreshToken string) (*dto.LoginResponse, error)
	VerifyToken(token string) (*dto.UserInfo, error)
}

type authService struct {
	cfg         *config.AuthConfig
	userRepo    repository.UserRepository
	ldapService LDAPService
}

func NewAuthService(
	cfg *config.AuthConfig,
	userRepo repository.UserRepository,
	ldapService LDAPService,
) AuthService {
	return &authService{
		cfg:         cfg,
		userRepo:    userRepo,
		ldapService: ldapService,
	}
}

// Signup 注册本地用户
// 密码与确认密码一致性由请求绑定校验(400), 此处只负责落库
func (s *authService) Signup(req *dto.SignupRequest) (*dto.UserInfo, error) {
	if !s.cfg.Local.Enabled {
		return nil, pkgErrors.New(pkgErrors.CodeAuthError, "本地认证未启用")
	}

	if _, err := s.userRepo.FindByUsername(req.Username, constants.AuthTypeLocal); err == nil {
		return nil, pkgErrors.New(pkgErrors.CodeConflict, "用户名已存在")
	} else if !errors.Is(err, pkgErrors.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "密码哈希失败", err)
	}

	user := &model.User{
		AuthProvider: constants.AuthTypeLocal,
		Username:     req.Username,
		Password:     hashed,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.toUserInfo(user, constants.AuthTypeLocal), nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var user *model.User
	var err error

	switch req.AuthType {
	case constants.AuthTypeLDAP:
		if !s.cfg.LDAP.Enabled {
			return nil, pkgErrors.New(pkgErrors.CodeAuthError, "LDAP认证未启用")
		}
		ldapUser, err := s.ldapService.Authenticate(req.Username, req.Password)
		if err != nil {
			return nil, err
		}
		if user, err = s.syncLDAPUser(ldapUser); err != nil {
			return nil, err
		}

	case constants.AuthTypeLocal:
		if !s.cfg.Local.Enabled {
			return nil, pkgErrors.New(pkgErrors.CodeAuthError, "本地认证未启用")
		}
		if user, err = s.authenticateLocal(req.Username, req.Password); err != nil {
			return nil, err
		}

	default:
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "不支持的认证类型")
	}

	return s.issueTokens(user, req.AuthType)
}

func (s *authService) RefreshToken(refreshToken string) (*dto.LoginResponse, error) {
	claims, err := jwt.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != constants.JWTTypeRefresh {
		return nil, pkgErrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user.Status != constants.StatusEnabled {
		return nil, pkgErrors.ErrUserDisabled
	}

	return s.issueTokens(user, claims.AuthType)
}

func (s *authService) VerifyToken(token string) (*dto.UserInfo, error) {
	claims, err := jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Type != constants.JWTTypeAccess {
		return nil, pkgErrors.ErrInvalidToken
	}

	return &dto.UserInfo{
		ID:       claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		AuthType: claims.AuthType,
	}, nil
}

func (s *authService) authenticateLocal(username, password string) (*model.User, error) {
	// 查询用户
	user, err := s.userRepo.FindByUsername(username, constants.AuthTypeLocal)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	// 检查状态
	if user.Status != constants.StatusEnabled {
		return nil, pkgErrors.ErrUserDisabled
	}

	// 验证密码
	if !crypto.CheckPassword(password, user.Password) {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	// 更新最后登录时间
	_ = s.userRepo.UpdateLastLogin(user.ID)

	return user, nil
}

// syncLDAPUser LDAP认证通过后同步到本地users表, 保证principal有稳定的本地ID
func (s *authService) syncLDAPUser(info *dto.LDAPUserInfo) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(info.Username, constants.AuthTypeLDAP)
	if err != nil {
		if !errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, err
		}
		user = &model.User{
			AuthProvider: constants.AuthTypeLDAP,
			Username:     info.Username,
			Email:        info.Email,
			FirstName:    info.FirstName,
			LastName:     info.LastName,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
		return user, nil
	}

	user.Email = info.Email
	user.FirstName = info.FirstName
	user.LastName = info.LastName
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = s.userRepo.UpdateLastLogin(user.ID)

	return user, nil
}

func (s *authService) issueTokens(user *model.User, authType string) (*dto.LoginResponse, error) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	accessToken, err := jwt.GenerateAccessToken(user.ID, user.Username, email, authType)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成AccessToken失败", err)
	}

	refreshToken, err := jwt.GenerateRefreshToken(user.ID, user.Username, email, authType)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成RefreshToken失败", err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.cfg.JWT.AccessTokenExpire,
		User:         s.toUserInfo(user, authType),
	}, nil
}

func (s *authService) toUserInfo(user *model.User, authType string) *dto.UserInfo {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	return &dto.UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    email,
		AuthType: authType,
	}
}
