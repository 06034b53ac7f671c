package repository

import (
	"errors"

	"gorm.io/gorm"

	"softdesk/internal/model"
	pkgErrors "softdesk/pkg/responses"
)

type ProjectRepository interface {
	FindByID(id int64, opts ...QueryOption) (*model.Project, error)
	FindByTitle(title string) (*model.Project, error)
	// FindVisibleByID 在当前用户可见范围内查询项目; 不可见与不存在同样返回记录不存在
	FindVisibleByID(id, userID int64, opts ...QueryOption) (*model.Project, error)
	ListVisible(userID int64, opts ...QueryOption) ([]*model.Project, error)
	Update(project *model.Project) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) FindByID(id int64, opts ...QueryOption) (*model.Project, error) {
	var project model.Project
	err := apply(r.db, opts...).First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return &project, nil
}

func (r *projectRepository) FindByTitle(title string) (*model.Project, error) {
	var project model.Project
	err := r.db.Where("title = ?", title).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return &project, nil
}

func (r *projectRepository) FindVisibleByID(id, userID int64, opts ...QueryOption) (*model.Project, error) {
	var project model.Project
	err := apply(r.db, append(opts, VisibleProjects(userID))...).
		First(&project, "projects.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return &project, nil
}

func (r *projectRepository) ListVisible(userID int64, opts ...QueryOption) ([]*model.Project, error) {
	var projects []*model.Project
	err := apply(r.db.Model(&model.Project{}), append(opts, VisibleProjects(userID))...).
		Order("projects.created_at DESC").Find(&projects).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目列表失败", err)
	}
	return projects, nil
}

func (r *projectRepository) Update(project *model.Project) error {
	if err := r.db.Save(project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgErrors.New(pkgErrors.CodeConflict, "项目标题已存在")
		}
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新项目失败", err)
	}
	return nil
}
