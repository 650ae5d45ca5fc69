package user

import "time"

type Profile struct {
	UserID    string    `gorm:"type:uuid;primaryKey"`
	Email     *string   `gorm:"type:text"`
	FullName  *string   `gorm:"type:text"`
	AvatarURL *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "user_profiles"
}

// Identity is what the auth collaborator tells us about the caller.
type Identity struct {
	UserID    string
	Email     string
	FullName  string
	AvatarURL string
}
