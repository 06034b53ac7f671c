package model

const IssueTableName = "issues"

// Issue 问题模型
// author 在创建时确定, 之后不可变更; assigned 必须是项目贡献者
type Issue struct {
	BaseModel
	Title       string `gorm:"size:50;not null" json:"title"`
	Description string `gorm:"size:320;not null" json:"description"`
	Status      int8   `gorm:"not null;default:0" json:"status"`   // 0:todo 1:pending 2:finished
	Tag         int8   `gorm:"not null" json:"tag"`                // 0:bug 1:improvement 2:task
	Priority    int8   `gorm:"not null;default:0" json:"priority"` // 0:low 1:average 2:high
	ProjectID   int64  `gorm:"not null;index" json:"project_id"`
	AuthorID    int64  `gorm:"not null;index" json:"author_id"`
	AssignedID  *int64 `gorm:"index" json:"assigned_id"`

	// Relations
	Project  *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Author   *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"author,omitempty"`
	Assigned *User     `gorm:"foreignKey:AssignedID" json:"assigned,omitempty"`
	Comments []Comment `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

func (Issue) TableName() string {
	return IssueTableName
}
