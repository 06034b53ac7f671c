package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"softdesk/internal/dto"
	"softdesk/internal/model"
	"softdesk/internal/pkg/auth"
	"softdesk/internal/repository"
	"softdesk/pkg/constants"
	pkgErrors "softdesk/pkg/responses"
)

type ContributorService interface {
	List(principalID, projectID int64) ([]*dto.ContributorResponse, error)
	Create(principalID, projectID int64, req *dto.CreateContributorRequest) (*dto.ContributorResponse, error)
	GetByUser(principalID, projectID, userID int64) (*dto.ContributorResponse, error)
	Update(principalID, projectID, userID int64, req *dto.UpdateContributorRequest) (*dto.ContributorResponse, error)
	Delete(principalID, projectID, userID int64) error
}

type contributorService struct {
	repo        repository.ContributorRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	authz       AuthorizationService
}

func NewContributorService(repo repository.ContributorRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository, authz AuthorizationService) ContributorService {
	return &contributorService{
		repo:        repo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		authz:       authz,
	}
}

// resolveProject 路径上的项目必须存在且对principal可见, 否则404
func (s *contributorService) resolveProject(principalID, projectID int64) error {
	_, err := s.projectRepo.FindVisibleByID(projectID, principalID)
	return err
}

func (s *contributorService) List(principalID, projectID int64) ([]*dto.ContributorResponse, error) {
	if err := s.resolveProject(principalID, projectID); err != nil {
		return nil, err
	}

	contributors, err := s.repo.ListByProject(projectID, repository.WithPreload("User"))
	if err != nil {
		return nil, err
	}

	return lo.Map(contributors, func(contributor *model.Contributor, _ int) *dto.ContributorResponse {
		return s.toResponse(contributor)
	}), nil
}

func (s *contributorService) Create(principalID, projectID int64, req *dto.CreateContributorRequest) (*dto.ContributorResponse, error) {
	if err := s.resolveProject(principalID, projectID); err != nil {
		return nil, err
	}

	if !s.authz.Can(principalID, auth.ResourceContributor, auth.ActionCreate, &auth.Target{ProjectID: projectID}) {
		return nil, pkgErrors.ErrForbidden
	}

	user, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "用户不存在", err)
	}

	// (user, project) 组合唯一; 并发竞争由唯一索引兜底, 输掉的一方得到409
	if _, err := s.repo.FindByProjectAndUser(projectID, req.UserID); err == nil {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest,
			fmt.Sprintf("字段 (project, user) 必须构成唯一组合: 用户 %d 已是项目 %d 的贡献者", req.UserID, projectID))
	} else if !errors.Is(err, pkgErrors.ErrRecordNotFound) {
		return nil, err
	}

	permission := constants.ContributorPermissionRead
	if req.Permission != "" {
		permission, err = constants.ParseContributorPermission(req.Permission)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "无效的权限等级", err)
		}
	}

	contributor := &model.Contributor{
		ProjectID:  projectID,
		UserID:     req.UserID,
		Role:       constants.ContributorRoleContributor,
		Permission: permission,
	}

	if err := s.repo.Create(contributor); err != nil {
		return nil, err
	}
	contributor.User = user

	return s.toResponse(contributor), nil
}

func (s *contributorService) GetByUser(principalID, projectID, userID int64) (*dto.ContributorResponse, error) {
	if err := s.resolveProject(principalID, projectID); err != nil {
		return nil, err
	}

	contributor, err := s.repo.FindByProjectAndUser(projectID, userID, repository.WithPreload("User"))
	if err != nil {
		return nil, err
	}
	return s.toResponse(contributor), nil
}

func (s *contributorService) Update(principalID, projectID, userID int64, req *dto.UpdateContributorRequest) (*dto.ContributorResponse, error) {
	if err := s.resolveProject(principalID, projectID); err != nil {
		return nil, err
	}

	contributor, err := s.repo.FindByProjectAndUser(projectID, userID, repository.WithPreload("User"))
	if err != nil {
		return nil, err
	}

	if !s.authz.Can(principalID, auth.ResourceContributor, auth.ActionUpdate, &auth.Target{ProjectID: projectID}) {
		return nil, pkgErrors.ErrForbidden
	}

	// user 与 role 创建后不可变更, 此处只接受权限等级调整
	permission, err := constants.ParseContributorPermission(req.Permission)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "无效的权限等级", err)
	}
	contributor.Permission = permission

	if err := s.repo.Update(contributor); err != nil {
		return nil, err
	}

	return s.toResponse(contributor), nil
}

func (s *contributorService) Delete(principalID, projectID, userID int64) error {
	if err := s.resolveProject(principalID, projectID); err != nil {
		return err
	}

	contributor, err := s.repo.FindByProjectAndUser(projectID, userID)
	if err != nil {
		return err
	}

	target := &auth.Target{
		ProjectID:         projectID,
		ContributorUserID: contributor.UserID,
		ContributorRole:   contributor.Role,
	}
	if !s.authz.Can(principalID, auth.ResourceContributor, auth.ActionDelete, target) {
		return pkgErrors.ErrForbidden
	}

	_, err = s.repo.DeleteByProjectAndUser(projectID, userID)
	return err
}

func (s *contributorService) toResponse(contributor *model.Contributor) *dto.ContributorResponse {
	resp := &dto.ContributorResponse{
		ID:         contributor.ID,
		ProjectID:  contributor.ProjectID,
		UserID:     contributor.UserID,
		Role:       constants.ContributorRoleToString(contributor.Role),
		Permission: constants.ContributorPermissionToString(contributor.Permission),
		CreatedAt:  contributor.CreatedAt.Format(time.RFC3339),
	}
	if contributor.User != nil {
		resp.User = toUserResponse(contributor.User)
	}
	return resp
}
