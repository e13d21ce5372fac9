package model

// PrivateComment is a one-to-one note between two users (teacher, student or
// parent), scoped to a student and optionally to a context such as a class
// discussion thread.
type PrivateComment struct {
	UUIDBase
	AuthorID    string `gorm:"size:36;not null;index" json:"authorId"`
	TargetID    string `gorm:"size:36;not null;index" json:"targetId"`
	StudentID   string `gorm:"size:36;index" json:"studentId,omitempty"`
	ContextType string `gorm:"size:30" json:"contextType,omitempty"`
	ContextID   string `gorm:"size:36" json:"contextId,omitempty"`
	Content     string `gorm:"size:2000;not null" json:"content"`
	ImageURL    string `gorm:"size:255" json:"imageUrl,omitempty"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Target *User `gorm:"foreignKey:TargetID" json:"target,omitempty"`
}

func (PrivateComment) TableName() string {
	return "tb_private_comments"
}
