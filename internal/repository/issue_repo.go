package repository

import (
	"errors"

	"gorm.io/gorm"

	"softdesk/internal/model"
	pkgErrors "softdesk/pkg/responses"
)

type IssueRepository interface {
	Create(issue *model.Issue) error
	// FindByProjectAndID 按路径父级收敛查询; issue存在但挂在别的项目下同样返回记录不存在
	FindByProjectAndID(projectID, issueID int64, opts ...QueryOption) (*model.Issue, error)
	ListByProject(projectID int64, opts ...QueryOption) ([]*model.Issue, error)
	Update(issue *model.Issue) error
	Delete(id int64) error
}

type issueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

func (r *issueRepository) Create(issue *model.Issue) error {
	if err := r.db.Create(issue).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建问题失败", err)
	}
	return nil
}

func (r *issueRepository) FindByProjectAndID(projectID, issueID int64, opts ...QueryOption) (*model.Issue, error) {
	var issue model.Issue
	err := apply(r.db, append(opts, ProjectIssues(projectID))...).
		First(&issue, "issues.id = ?", issueID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询问题失败", err)
	}
	return &issue, nil
}

func (r *issueRepository) ListByProject(projectID int64, opts ...QueryOption) ([]*model.Issue, error) {
	var issues []*model.Issue
	err := apply(r.db.Model(&model.Issue{}), append(opts, ProjectIssues(projectID))...).
		Order("issues.created_at DESC").
		Find(&issues).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询问题列表失败", err)
	}
	return issues, nil
}

func (r *issueRepository) Update(issue *model.Issue) error {
	if err := r.db.Save(issue).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新问题失败", err)
	}
	return nil
}

func (r *issueRepository) Delete(id int64) error {
	// 先删评论再删问题, 保持级联闭包
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Issue{}, id).Error
	})
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除问题失败", err)
	}
	return nil
}
