package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"softdesk/internal/dto"
	"softdesk/internal/model"
	"softdesk/internal/pkg/auth"
	"softdesk/internal/repository"
	"softdesk/pkg/constants"
	pkgErrors "softdesk/pkg/responses"
)

type ProjectService interface {
	Create(principalID int64, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	List(principalID int64) ([]*dto.ProjectResponse, error)
	GetByID(principalID, projectID int64) (*dto.ProjectResponse, error)
	Update(principalID, projectID int64, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Delete(principalID, projectID int64) error
}

type projectService struct {
	db       *gorm.DB
	repo     repository.ProjectRepository
	userRepo repository.UserRepository
	authz    AuthorizationService
}

func NewProjectService(db *gorm.DB, repo repository.ProjectRepository, userRepo repository.UserRepository, authz AuthorizationService) ProjectService {
	return &projectService{
		db:       db,
		repo:     repo,
		userRepo: userRepo,
		authz:    authz,
	}
}

func (s *projectService) Create(principalID int64, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	projectType, err := constants.ParseProjectType(req.Type)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "无效的项目类型", err)
	}

	// 检查项目标题是否已存在
	existing, _ := s.repo.FindByTitle(req.Title)
	if existing != nil {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest,
			fmt.Sprintf("项目 %s 已存在", req.Title))
	}

	project := &model.Project{
		Title:       req.Title,
		Description: req.Description,
		Type:        projectType,
		AuthorID:    principalID,
	}

	// 项目与owner贡献者行必须同事务落库: 二者要么都存在要么都不存在
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		owner := &model.Contributor{
			ProjectID:  project.ID,
			UserID:     principalID,
			Role:       constants.ContributorRoleOwner,
			Permission: constants.ContributorPermissionDelete,
		}
		return tx.Create(owner).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgErrors.New(pkgErrors.CodeConflict, "项目标题已存在")
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建项目失败", err)
	}

	project.Author, _ = s.userRepo.FindByID(principalID)
	return s.toResponse(project), nil
}

func (s *projectService) List(principalID int64) ([]*dto.ProjectResponse, error) {
	projects, err := s.repo.ListVisible(principalID, repository.WithPreload("Author"))
	if err != nil {
		return nil, err
	}

	return lo.Map(projects, func(project *model.Project, _ int) *dto.ProjectResponse {
		return s.toResponse(project)
	}), nil
}

func (s *projectService) GetByID(principalID, projectID int64) (*dto.ProjectResponse, error) {
	// 不可见与不存在同样返回404, 不向非成员泄露项目是否存在
	project, err := s.repo.FindVisibleByID(projectID, principalID, repository.WithPreload("Author"))
	if err != nil {
		return nil, err
	}
	return s.toResponse(project), nil
}

func (s *projectService) Update(principalID, projectID int64, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.repo.FindVisibleByID(projectID, principalID, repository.WithPreload("Author"))
	if err != nil {
		return nil, err
	}

	if !s.authz.Can(principalID, auth.ResourceProject, auth.ActionUpdate, &auth.Target{ProjectID: projectID}) {
		return nil, pkgErrors.ErrForbidden
	}

	if req.Title != nil && *req.Title != project.Title {
		if existing, _ := s.repo.FindByTitle(*req.Title); existing != nil {
			return nil, pkgErrors.New(pkgErrors.CodeBadRequest,
				fmt.Sprintf("项目 %s 已存在", *req.Title))
		}
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.Type != nil {
		projectType, err := constants.ParseProjectType(*req.Type)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "无效的项目类型", err)
		}
		project.Type = projectType
	}

	if err := s.repo.Update(project); err != nil {
		return nil, err
	}

	return s.toResponse(project), nil
}

func (s *projectService) Delete(principalID, projectID int64) error {
	if _, err := s.repo.FindVisibleByID(projectID, principalID); err != nil {
		return err
	}

	if !s.authz.Can(principalID, auth.ResourceProject, auth.ActionDelete, &auth.Target{ProjectID: projectID}) {
		return pkgErrors.ErrForbidden
	}

	// 级联闭包: 评论 → 问题 → 贡献者 → 项目, 单事务完成
	err := s.db.Transaction(func(tx *gorm.DB) error {
		issueIDs := tx.Model(&model.Issue{}).Select("id").Where("project_id = ?", projectID)
		if err := tx.Where("issue_id IN (?)", issueIDs).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Issue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Contributor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, projectID).Error
	})
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除项目失败", err)
	}
	return nil
}

func (s *projectService) toResponse(project *model.Project) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Type:        constants.ProjectTypeToString(project.Type),
		CreatedAt:   project.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   project.UpdatedAt.Format(time.RFC3339),
	}
	if project.Author != nil {
		resp.Author = toUserResponse(project.Author)
	}
	return resp
}

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}
