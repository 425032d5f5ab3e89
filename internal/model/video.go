package model

type Video struct {
	BaseModel
	OwnerID      uint64  `gorm:"not null;index"`
	Title        string  `gorm:"size:255;not null"`
	Description  string  `gorm:"type:text"`
	VideoURL     string  `gorm:"size:512;not null"` // 视频播放地址
	ThumbnailURL string  `gorm:"size:512;not null"` // 视频封面地址
	Duration     float64 `gorm:"default:0"`         // 秒
	Views        uint64  `gorm:"default:0"`
	IsPublished  bool    `gorm:"default:true;index"`

	// 外键OwnerID和User表的ID
	Owner User `gorm:"foreignKey:OwnerID;references:ID"`
}
