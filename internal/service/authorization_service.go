package service

import (
	"errors"

	"go.uber.org/zap"

	"softdesk/internal/model"
	"softdesk/internal/pkg/auth"
	"softdesk/internal/pkg/logger"
	"softdesk/internal/repository"
	"softdesk/pkg/constants"
	pkgErrors "softdesk/pkg/responses"
)

// AuthorizationService 权限判定
// 取出资源/动作对应的谓词列表, 按顺序短路AND求值;
// 任何查询失败(行不存在, 用户不是贡献者)都判定为拒绝, 不会放行
type AuthorizationService interface {
	Can(principalID int64, resource auth.Resource, action auth.Action, target *auth.Target) bool
	IsProjectOwner(principalID, projectID int64) bool
}

type authorizationService struct {
	contributorRepo repository.ContributorRepository
}

// NewAuthorizationService 创建 AuthorizationService
func NewAuthorizationService(contributorRepo repository.ContributorRepository) AuthorizationService {
	return &authorizationService{
		contributorRepo: contributorRepo,
	}
}

func (s *authorizationService) Can(principalID int64, resource auth.Resource, action auth.Action, target *auth.Target) bool {
	predicates := auth.RulesFor(resource, action)
	// 未配置的组合一律拒绝
	if len(predicates) == 0 {
		return false
	}

	for _, predicate := range predicates {
		if !s.eval(principalID, predicate, target) {
			return false
		}
	}
	return true
}

func (s *authorizationService) IsProjectOwner(principalID, projectID int64) bool {
	contributor, ok := s.membership(principalID, projectID)
	return ok && contributor.Role == constants.ContributorRoleOwner
}

func (s *authorizationService) eval(principalID int64, predicate auth.Predicate, target *auth.Target) bool {
	switch predicate {
	case auth.PredAuthenticated:
		return principalID > 0

	case auth.PredProjectMember:
		_, ok := s.membership(principalID, target.ProjectID)
		return ok

	case auth.PredProjectOwner:
		return s.IsProjectOwner(principalID, target.ProjectID)

	case auth.PredObjectAuthor:
		return target.AuthorID == principalID

	case auth.PredObjectAuthorOrOwner:
		if target.AuthorID == principalID {
			return true
		}
		return s.IsProjectOwner(principalID, target.ProjectID)

	case auth.PredContributorSelfOrOwner:
		// owner行只随项目删除一起消失, 即使owner本人也不能在此删除
		if target.ContributorRole == constants.ContributorRoleOwner {
			return false
		}
		if target.ContributorUserID == principalID {
			return true
		}
		return s.IsProjectOwner(principalID, target.ProjectID)

	default:
		return false
	}
}

// membership 查询principal在项目下的贡献者行, 不存在或查询失败都视为非成员
func (s *authorizationService) membership(principalID, projectID int64) (*model.Contributor, bool) {
	c, err := s.contributorRepo.FindByProjectAndUser(projectID, principalID)
	if err != nil {
		if !errors.Is(err, pkgErrors.ErrRecordNotFound) {
			logger.Warn("查询贡献者失败", zap.Int64("project_id", projectID), zap.Int64("user_id", principalID), zap.Error(err))
		}
		return nil, false
	}
	return c, true
}
