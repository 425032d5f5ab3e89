package repository

import (
	"context"

	"Vidtube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	FindByID(ctx context.Context, playlistID uint64) (*model.Playlist, error)
	// FindWithVideos 连同成员视频一起查，视频按加入顺序排列；未发布的视频只有作者本人看得到
	FindWithVideos(ctx context.Context, playlistID, viewerID uint64) (*model.Playlist, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Playlist, error)
	Update(ctx context.Context, playlistID uint64, fields map[string]interface{}) error
	Delete(ctx context.Context, playlistID uint64) error

	AddVideo(ctx context.Context, playlistID, videoID uint64) error
	RemoveVideo(ctx context.Context, playlistID, videoID uint64) error
	RemoveVideoEverywhere(ctx context.Context, videoID uint64) error

	WithTx(tx *gorm.DB) PlaylistRepository
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) WithTx(tx *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: tx}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

func (r *playlistRepository) FindByID(ctx context.Context, playlistID uint64) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := r.db.WithContext(ctx).Preload("Owner", publicUserColumns).First(&playlist, playlistID).Error; err != nil {
		return nil, err
	}
	return &playlist, nil
}

// FindWithVideos 1、查歌单 2、join成员表按成员表自增id排序取视频，只展示viewer看得到的
func (r *playlistRepository) FindWithVideos(ctx context.Context, playlistID, viewerID uint64) (*model.Playlist, error) {
	playlist, err := r.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	var videos []model.Video
	err = r.db.WithContext(ctx).
		Joins("JOIN playlist_videos pv ON pv.video_id = videos.id AND pv.playlist_id = ?", playlistID).
		Scopes(visibleTo(viewerID)).
		Preload("Owner", publicUserColumns).
		Order("pv.id ASC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	playlist.Videos = videos
	return playlist, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&playlists).Error
	return playlists, err
}

func (r *playlistRepository) Update(ctx context.Context, playlistID uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Playlist{}).Where("id = ?", playlistID).Updates(fields).Error
}

// Delete 软删歌单，成员关系直接硬删
func (r *playlistRepository) Delete(ctx context.Context, playlistID uint64) error {
	if err := r.db.WithContext(ctx).Where("playlist_id = ?", playlistID).Delete(&model.PlaylistVideo{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&model.Playlist{}, playlistID).Error
}

// AddVideo 已经在歌单里就什么都不做，相当于集合的add
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uint64) error {
	entry := &model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(entry).Error
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uint64) error {
	return r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{}).Error
}

func (r *playlistRepository) RemoveVideoEverywhere(ctx context.Context, videoID uint64) error {
	return r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&model.PlaylistVideo{}).Error
}
