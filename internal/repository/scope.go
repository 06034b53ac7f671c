package repository

import "gorm.io/gorm"

// 作用域查询构造器: 每个集合一个函数, (principal, 路径ID) → 查询谓词
// 路径上的父级ID必须在此处收敛, 越界的标识符表现为"记录不存在"

// VisibleProjects 当前用户可见的项目: 作者或贡献者
func VisibleProjects(userID int64) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"projects.author_id = ? OR projects.id IN (SELECT project_id FROM contributors WHERE user_id = ?)",
			userID, userID,
		)
	}
}

// ProjectContributors 指定项目下的贡献者
func ProjectContributors(projectID int64) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("contributors.project_id = ?", projectID)
	}
}

// ProjectIssues 指定项目下的问题
func ProjectIssues(projectID int64) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("issues.project_id = ?", projectID)
	}
}

// IssueComments 指定问题下的评论, 同时校验问题属于路径上的项目
func IssueComments(projectID, issueID int64) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN issues ON issues.id = comments.issue_id").
			Where("comments.issue_id = ? AND issues.project_id = ?", issueID, projectID)
	}
}
