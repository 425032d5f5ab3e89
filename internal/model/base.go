package model

import (
	"time"

	"gorm.io/gorm"
)

// 由于gorm的基本结构中ID是uint类型，统一成uint64，所以自己搞了个base结构体
type BaseModel struct {
	ID        uint64 `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// 关系表（点赞、订阅、歌单成员）不做软删除，否则被软删除的行还占着唯一索引，切换时会撞键
type RelationModel struct {
	ID        uint64 `gorm:"primarykey"`
	CreatedAt time.Time
}

// All 返回需要迁移的全部模型
func All() []interface{} {
	return []interface{}{
		&User{}, &Video{}, &Comment{}, &Like{}, &Subscription{},
		&Playlist{}, &PlaylistVideo{}, &Tweet{}, &WatchHistory{},
	}
}
