package model

import "time"

// WatchHistory 观看记录，同一个视频再看一次只刷新WatchedAt
type WatchHistory struct {
	ID        uint64    `gorm:"primarykey"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_user_video_history,priority:1"`
	VideoID   uint64    `gorm:"not null;uniqueIndex:idx_user_video_history,priority:2;index"`
	WatchedAt time.Time `gorm:"not null;index"`
}
