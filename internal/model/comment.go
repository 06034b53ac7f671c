package model

const CommentTableName = "comments"

// Comment 问题评论
type Comment struct {
	BaseModel
	Description string `gorm:"size:320;not null" json:"description"`
	IssueID     int64  `gorm:"not null;index" json:"issue_id"`
	AuthorID    int64  `gorm:"not null;index" json:"author_id"`

	// Relations
	Issue  *Issue `gorm:"foreignKey:IssueID" json:"issue,omitempty"`
	Author *User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"author,omitempty"`
}

func (Comment) TableName() string {
	return CommentTableName
}
