package service

import (
	"time"

	"github.com/samber/lo"

	"softdesk/internal/dto"
	"softdesk/internal/model"
	"softdesk/internal/pkg/auth"
	"softdesk/internal/repository"
	pkgErrors "softdesk/pkg/responses"
)

type CommentService interface {
	List(principalID, projectID, issueID int64) ([]*dto.CommentResponse, error)
	Create(principalID, projectID, issueID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetByID(principalID, projectID, issueID, commentID int64) (*dto.CommentResponse, error)
	Update(principalID, projectID, issueID, commentID int64, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(principalID, projectID, issueID, commentID int64) error
}

type commentService struct {
	repo        repository.CommentRepository
	issueRepo   repository.IssueRepository
	projectRepo repository.ProjectRepository
	authz       AuthorizationService
}

func NewCommentService(repo repository.CommentRepository, issueRepo repository.IssueRepository, projectRepo repository.ProjectRepository, authz AuthorizationService) CommentService {
	return &commentService{
		repo:        repo,
		issueRepo:   issueRepo,
		projectRepo: projectRepo,
		authz:       authz,
	}
}

// resolvePath 路径上的项目与问题逐级收敛; 任一环节不匹配都表现为404
func (s *commentService) resolvePath(principalID, projectID, issueID int64) (*model.Issue, error) {
	if _, err := s.projectRepo.FindVisibleByID(projectID, principalID); err != nil {
		return nil, err
	}
	return s.issueRepo.FindByProjectAndID(projectID, issueID)
}

func (s *commentService) List(principalID, projectID, issueID int64) ([]*dto.CommentResponse, error) {
	if _, err := s.resolvePath(principalID, projectID, issueID); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListByIssue(projectID, issueID, repository.WithPreload("Author"))
	if err != nil {
		return nil, err
	}

	return lo.Map(comments, func(comment *model.Comment, _ int) *dto.CommentResponse {
		return s.toResponse(comment)
	}), nil
}

func (s *commentService) Create(principalID, projectID, issueID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	issue, err := s.resolvePath(principalID, projectID, issueID)
	if err != nil {
		return nil, err
	}

	if !s.authz.Can(principalID, auth.ResourceComment, auth.ActionCreate, &auth.Target{ProjectID: projectID}) {
		return nil, pkgErrors.ErrForbidden
	}

	comment := &model.Comment{
		Description: req.Description,
		IssueID:     issue.ID,
		AuthorID:    principalID,
	}

	if err := s.repo.Create(comment); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByPath(projectID, issueID, comment.ID, repository.WithPreload("Author"))
	if err != nil {
		return nil, err
	}
	return s.toResponse(created), nil
}

func (s *commentService) GetByID(principalID, projectID, issueID, commentID int64) (*dto.CommentResponse, error) {
	if _, err := s.resolvePath(principalID, projectID, issueID); err != nil {
		return nil, err
	}

	comment, err := s.repo.FindByPath(projectID, issueID, commentID, repository.WithPreload("Author"))
	if err != nil {
		return nil, err
	}
	return s.toResponse(comment), nil
}

func (s *commentService) Update(principalID, projectID, issueID, commentID int64, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	if _, err := s.resolvePath(principalID, projectID, issueID); err != nil {
		return nil, err
	}

	comment, err := s.repo.FindByPath(projectID, issueID, commentID, repository.WithPreload("Author"))
	if err != nil {
		return nil, err
	}

	target := &auth.Target{ProjectID: projectID, AuthorID: comment.AuthorID}
	if !s.authz.Can(principalID, auth.ResourceComment, auth.ActionUpdate, target) {
		return nil, pkgErrors.ErrForbidden
	}

	// author 与 created_time 不参与更新
	comment.Description = req.Description

	if err := s.repo.Update(comment); err != nil {
		return nil, err
	}
	return s.toResponse(comment), nil
}

func (s *commentService) Delete(principalID, projectID, issueID, commentID int64) error {
	if _, err := s.resolvePath(principalID, projectID, issueID); err != nil {
		return err
	}

	comment, err := s.repo.FindByPath(projectID, issueID, commentID)
	if err != nil {
		return err
	}

	target := &auth.Target{ProjectID: projectID, AuthorID: comment.AuthorID}
	if !s.authz.Can(principalID, auth.ResourceComment, auth.ActionDelete, target) {
		return pkgErrors.ErrForbidden
	}

	return s.repo.Delete(comment.ID)
}

func (s *commentService) toResponse(comment *model.Comment) *dto.CommentResponse {
	resp := &dto.CommentResponse{
		ID:          comment.ID,
		IssueID:     comment.IssueID,
		Description: comment.Description,
		CreatedTime: comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   comment.UpdatedAt.Format(time.RFC3339),
	}
	if comment.Author != nil {
		resp.Author = toUserResponse(comment.Author)
	}
	return resp
}
