package model

const ProjectTableName = "projects"

// Project 项目模型
type Project struct {
	BaseModel
	Title       string  `gorm:"size:150;not null;uniqueIndex" json:"title"`
	Description *string `gorm:"size:255" json:"description"`
	Type        int8    `gorm:"not null" json:"type"` // 0:backend 1:frontend 2:ios 3:android
	AuthorID    int64   `gorm:"not null;index" json:"author_id"`

	// Relations
	Author       *User         `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"author,omitempty"`
	Contributors []Contributor `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"contributors,omitempty"`
	Issues       []Issue       `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"issues,omitempty"`
}

func (Project) TableName() string {
	return ProjectTableName
}
