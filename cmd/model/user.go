package model

import (
	"time"

	"VideoTube.com/pkg/pipeline"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:24" json:"id"`
	Username  string    `gorm:"size:64;not null;uniqueIndex:idx_users_username" json:"username"`
	Email     string    `gorm:"size:128;not null;uniqueIndex:idx_users_email" json:"email"`
	FullName  string    `gorm:"size:128" json:"full_name"`
	Avatar    string    `gorm:"size:512" json:"avatar"`
	AvatarKey string    `gorm:"size:255" json:"avatar_key"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return Users }

func (u *User) ToDoc() pipeline.Doc {
	return pipeline.Doc{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"full_name":  u.FullName,
		"avatar":     u.Avatar,
		"avatar_key": u.AvatarKey,
		"password":   u.Password,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

func (u *User) FromDoc(d pipeline.Doc) {
	u.ID = str(d, "id")
	u.Username = str(d, "username")
	u.Email = str(d, "email")
	u.FullName = str(d, "full_name")
	u.Avatar = str(d, "avatar")
	u.AvatarKey = str(d, "avatar_key")
	u.Password = str(d, "password")
	u.CreatedAt = stamp(d, "created_at")
	u.UpdatedAt = stamp(d, "updated_at")
}

// PublicUserFields are the user fields safe to return to clients.
var PublicUserFields = []string{"username", "email", "full_name", "avatar", "created_at", "updated_at"}
