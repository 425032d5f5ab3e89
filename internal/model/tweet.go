package model

type Tweet struct {
	BaseModel
	Content string `gorm:"type:text;not null"`
	OwnerID uint64 `gorm:"not null;index"`

	Owner User `gorm:"foreignKey:OwnerID"`
}
