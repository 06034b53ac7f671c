package repository

import (
	"errors"

	"gorm.io/gorm"

	"softdesk/internal/model"
	pkgErrors "softdesk/pkg/responses"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByPath(projectID, issueID, commentID int64, opts ...QueryOption) (*model.Comment, error)
	ListByIssue(projectID, issueID int64, opts ...QueryOption) ([]*model.Comment, error)
	Update(comment *model.Comment) error
	Delete(id int64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建评论失败", err)
	}
	return nil
}

func (r *commentRepository) FindByPath(projectID, issueID, commentID int64, opts ...QueryOption) (*model.Comment, error) {
	var comment model.Comment
	err := apply(r.db, append(opts, IssueComments(projectID, issueID))...).
		First(&comment, "comments.id = ?", commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询评论失败", err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByIssue(projectID, issueID int64, opts ...QueryOption) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := apply(r.db.Model(&model.Comment{}), append(opts, IssueComments(projectID, issueID))...).
		Order("comments.created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询评论列表失败", err)
	}
	return comments, nil
}

func (r *commentRepository) Update(comment *model.Comment) error {
	if err := r.db.Save(comment).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新评论失败", err)
	}
	return nil
}

func (r *commentRepository) Delete(id int64) error {
	if err := r.db.Delete(&model.Comment{}, id).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除评论失败", err)
	}
	return nil
}
