package repository

import (
	"errors"

	"gorm.io/gorm"

	"softdesk/internal/model"
	pkgErrors "softdesk/pkg/responses"
)

type ContributorRepository interface {
	Create(contributor *model.Contributor) error
	FindByProjectAndUser(projectID, userID int64, opts ...QueryOption) (*model.Contributor, error)
	ListByProject(projectID int64, opts ...QueryOption) ([]*model.Contributor, error)
	Update(contributor *model.Contributor) error
	// DeleteByProjectAndUser 删除作用域内所有匹配行; 唯一索引保证最多一行
	DeleteByProjectAndUser(projectID, userID int64) (int64, error)
}

type contributorRepository struct {
	db *gorm.DB
}

func NewContributorRepository(db *gorm.DB) ContributorRepository {
	return &contributorRepository{db: db}
}

func (r *contributorRepository) Create(contributor *model.Contributor) error {
	if err := r.db.Create(contributor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发写入时唯一索引是最终权威
			return pkgErrors.New(pkgErrors.CodeConflict, "该用户已是项目贡献者")
		}
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "添加贡献者失败", err)
	}
	return nil
}

func (r *contributorRepository) FindByProjectAndUser(projectID, userID int64, opts ...QueryOption) (*model.Contributor, error) {
	var contributor model.Contributor
	err := apply(r.db, append(opts, ProjectContributors(projectID))...).
		Where("contributors.user_id = ?", userID).
		First(&contributor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询贡献者失败", err)
	}
	return &contributor, nil
}

func (r *contributorRepository) ListByProject(projectID int64, opts ...QueryOption) ([]*model.Contributor, error) {
	var contributors []*model.Contributor
	err := apply(r.db.Model(&model.Contributor{}), append(opts, ProjectContributors(projectID))...).
		Order("contributors.created_at ASC").
		Find(&contributors).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询贡献者列表失败", err)
	}
	return contributors, nil
}

func (r *contributorRepository) Update(contributor *model.Contributor) error {
	if err := r.db.Save(contributor).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新贡献者失败", err)
	}
	return nil
}

func (r *contributorRepository) DeleteByProjectAndUser(projectID, userID int64) (int64, error) {
	result := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&model.Contributor{})
	if result.Error != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除贡献者失败", result.Error)
	}
	return result.RowsAffected, nil
}
