package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Parent  UserRole = "parent"
)

// User is provisioned lazily on first sighting of a Hub identity; we never
// store credentials locally.
type User struct {
	UUIDBase
	HubUserID *int64   `gorm:"uniqueIndex" json:"hubUserId"`
	Username  string   `gorm:"size:100;not null" json:"username"`
	Email     string   `gorm:"size:100" json:"email"`
	Phone     string   `gorm:"size:30" json:"phone,omitempty"`
	AvatarURL string   `gorm:"size:255" json:"avatarUrl,omitempty"`
	Role      UserRole `gorm:"size:20;default:'student'" json:"role"`
}

func (User) TableName() string {
	return "tb_users"
}
