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

type IssueService interface {
	List(principalID, projectID int64) ([]*dto.IssueResponse, error)
	Create(principalID, projectID int64, req *dto.CreateIssueRequest) (*dto.IssueResponse, error)
	GetByID(principalID, projectID, issueID int64) (*dto.IssueResponse, error)
	Update(principalID, projectID, issueID int64, req *dto.UpdateIssueRequest) (*dto.IssueResponse, error)
	Delete(principalID, projectID, issueID int64) error
}

type issueService struct {
	repo            repository.IssueRepository
	projectRepo     repository.ProjectRepository
	contributorRepo repository.ContributorRepository
	authz           AuthorizationService
}

func NewIssueService(repo repository.IssueRepository, projectRepo repository.ProjectRepository, contributorRepo repository.ContributorRepository, authz AuthorizationService) IssueService {
	return &issueService{
		repo:            repo,
		projectRepo:     projectRepo,
		contributorRepo: contributorRepo,
		authz:           authz,
	}
}

// resolveProject 路径上的项目必须存在且对principal可见, 否则404
func (s *issueService) resolveProject(principalID, projectID int64) error {
	_, err := s.projectRepo.FindVisibleByID(projectID, principalID)
	return err
}

// validateAssigned assigned必须是项目贡献者
func (s *issueService) validateAssigned(projectID int64, assignedID *int64) error {
	if assignedID == nil {
		return nil
	}
	if _, err := s.contributorRepo.FindByProjectAndUser(projectID, *assignedID); err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return pkgErrors.New(pkgErrors.CodeBadRequest,
				fmt.Sprintf("用户 %d 不是项目 %d 的贡献者, 不能被指派", *assignedID, projectID))
		}
		return err
	}
	return nil
}

func (s *issueService) List(principalID, projectID int64) ([]*dto.IssueResponse, error) {
	if err := s.resolveProject(principalID, projectID); err != nil {
		return nil, err
	}

	issues, err := s.repo.ListByProject(projectID,
		repository.WithPreload("Author"), repository.WithPreload("Assigned"))
	if err != nil {
		return nil, err
	}

	return lo.Map(issues, func(issue *model.Issue, _ int) *dto.IssueResponse {
		return s.toResponse(issue)
	}), nil
}

func (s *issueService) Create(principalID, projectID int64, req *dto.CreateIssueRequest) (*dto.IssueResponse, error) {
	if err := s.resolveProject(principalID, projectID); err != nil {
		return nil, err
	}

	if !s.authz.Can(principalID, auth.ResourceIssue, auth.ActionCreate, &auth.Target{ProjectID: projectID}) {
		return nil, pkgErrors.ErrForbidden
	}

	tag, err := constants.ParseIssueTag(req.Tag)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "无效的问题标签", err)
	}

	status := constants.IssueStatusTodo
	if req.Status != "" {
		if status, err = constants.ParseIssueStatus(req.Status); err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "无效的问题状态", err)
		}
	}
	priority := constants.IssuePriorityLow
	if req.Priority != "" {
		if priority, err = constants.ParseIssuePriority(req.Priority); err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "无效的优先级", err)
		}
	}

	if err := s.validateAssigned(projectID, req.AssignedID); err != nil {
		return nil, err
	}

	issue := &model.Issue{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Tag:         tag,
		Priority:    priority,
		ProjectID:   projectID,
		AuthorID:    principalID,
		AssignedID:  req.AssignedID,
	}

	if err := s.repo.Create(issue); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByProjectAndID(projectID, issue.ID,
		repository.WithPreload("Author"), repository.WithPreload("Assigned"))
	if err != nil {
		return nil, err
	}
	return s.toResponse(created), nil
}

func (s *issueService) GetByID(principalID, projectID, issueID int64) (*dto.IssueResponse, error) {
	if err := s.resolveProject(principalID, projectID); err != nil {
		return nil, err
	}

	issue, err := s.repo.FindByProjectAndID(projectID, issueID,
		repository.WithPreload("Author"), repository.WithPreload("Assigned"))
	if err != nil {
		return nil, err
	}
	return s.toResponse(issue), nil
}

func (s *issueService) Update(principalID, projectID, issueID int64, req *dto.UpdateIssueRequest) (*dto.IssueResponse, error) {
	if err := s.resolveProject(principalID, projectID); err != nil {
		return nil, err
	}

	issue, err := s.repo.FindByProjectAndID(projectID, issueID)
	if err != nil {
		return nil, err
	}

	target := &auth.Target{ProjectID: projectID, AuthorID: issue.AuthorID}
	if !s.authz.Can(principalID, auth.ResourceIssue, auth.ActionUpdate, target) {
		return nil, pkgErrors.ErrForbidden
	}

	// author 与 created_time 不参与更新
	if req.Title != nil {
		issue.Title = *req.Title
	}
	if req.Description != nil {
		issue.Description = *req.Description
	}
	if req.Status != nil {
		status, err := constants.ParseIssueStatus(*req.Status)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "无效的问题状态", err)
		}
		issue.Status = status
	}
	if req.Tag != nil {
		tag, err := constants.ParseIssueTag(*req.Tag)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "无效的问题标签", err)
		}
		issue.Tag = tag
	}
	if req.Priority != nil {
		priority, err := constants.ParseIssuePriority(*req.Priority)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "无效的优先级", err)
		}
		issue.Priority = priority
	}
	if req.AssignedID != nil {
		if err := s.validateAssigned(projectID, req.AssignedID); err != nil {
			return nil, err
		}
		issue.AssignedID = req.AssignedID
	}

	if err := s.repo.Update(issue); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByProjectAndID(projectID, issueID,
		repository.WithPreload("Author"), repository.WithPreload("Assigned"))
	if err != nil {
		return nil, err
	}
	return s.toResponse(updated), nil
}

func (s *issueService) Delete(principalID, projectID, issueID int64) error {
	if err := s.resolveProject(principalID, projectID); err != nil {
		return err
	}

	issue, err := s.repo.FindByProjectAndID(projectID, issueID)
	if err != nil {
		return err
	}

	target := &auth.Target{ProjectID: projectID, AuthorID: issue.AuthorID}
	if !s.authz.Can(principalID, auth.ResourceIssue, auth.ActionDelete, target) {
		return pkgErrors.ErrForbidden
	}

	return s.repo.Delete(issue.ID)
}

func (s *issueService) toResponse(issue *model.Issue) *dto.IssueResponse {
	resp := &dto.IssueResponse{
		ID:          issue.ID,
		ProjectID:   issue.ProjectID,
		Title:       issue.Title,
		Description: issue.Description,
		Status:      constants.IssueStatusToString(issue.Status),
		Tag:         constants.IssueTagToString(issue.Tag),
		Priority:    constants.IssuePriorityToString(issue.Priority),
		CreatedTime: issue.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   issue.UpdatedAt.Format(time.RFC3339),
	}
	if issue.Author != nil {
		resp.Author = toUserResponse(issue.Author)
	}
	if issue.Assigned != nil {
		resp.Assigned = toUserResponse(issue.Assigned)
	}
	return resp
}
