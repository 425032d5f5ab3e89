package model

type User struct {
	BaseModel
	Username string `gorm:"size:64;uniqueIndex;not null"` // 统一小写
	Email    string `gorm:"size:255;uniqueIndex;not null"`
	FullName string `gorm:"size:128;not null"`
	// 密码和refresh token永远不能序列化出去，包括写进Redis缓存
	Password     string `gorm:"not null" json:"-"`
	RefreshToken string `gorm:"size:512" json:"-"`
	AvatarURL    string `gorm:"size:512;not null"`
	CoverURL     string `gorm:"size:512"`
}
