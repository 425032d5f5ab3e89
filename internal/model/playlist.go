package model

type Playlist struct {
	BaseModel
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	OwnerID     uint64 `gorm:"not null;index"`

	Owner User `gorm:"foreignKey:OwnerID"`
	// 成员视频由仓库按插入顺序单独查出来填充
	Videos []Video `gorm:"-"`
}

// PlaylistVideo 歌单和视频的成员关系，(playlist_id, video_id)唯一，展示顺序按插入顺序
type PlaylistVideo struct {
	RelationModel
	PlaylistID uint64 `gorm:"not null;uniqueIndex:idx_playlist_video,priority:1"`
	VideoID    uint64 `gorm:"not null;uniqueIndex:idx_playlist_video,priority:2;index"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
