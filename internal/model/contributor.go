package model

const ContributorTableName = "contributors"

// Contributor 项目贡献者
// 每个 (user, project) 组合最多一行, 由唯一索引保证
type Contributor struct {
	BaseModel
	ProjectID  int64 `gorm:"column:project_id;not null;uniqueIndex:idx_contributor_project_user" json:"project_id"`
	UserID     int64 `gorm:"column:user_id;not null;uniqueIndex:idx_contributor_project_user" json:"user_id"`
	Role       int8  `gorm:"not null" json:"role"`       // 1:owner 2:contributor
	Permission int8  `gorm:"not null" json:"permission"` // 1:read 2:write 3:delete

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Contributor) TableName() string {
	return ContributorTableName
}
