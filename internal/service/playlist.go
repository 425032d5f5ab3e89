package service

import (
	"context"
	"strings"

	"Vidtube/internal/apperror"
	"Vidtube/internal/data"
	"Vidtube/internal/model"
	"Vidtube/internal/repository"
	"Vidtube/pkg/logger"
)

type PlaylistService interface {
	Create(ctx context.Context, ownerID uint64, name, description string) (*model.Playlist, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Playlist, error)
	Get(ctx context.Context, playlistID, viewerID uint64) (*model.Playlist, error)
	Update(ctx context.Context, playlistID, actorID uint64, name, description *string) (*model.Playlist, error)
	Delete(ctx context.Context, playlistID, actorID uint64) error
	AddVideo(ctx context.Context, playlistID, videoID, actorID uint64) error
	RemoveVideo(ctx context.Context, playlistID, videoID, actorID uint64) error
}

type playlistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	uow          data.UnitOfWork
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository, uow data.UnitOfWork) PlaylistService {
	return &playlistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		uow:          uow,
	}
}

func (s *playlistService) Create(ctx context.Context, ownerID uint64, name, description string) (*model.Playlist, error) {
	playlist := &model.Playlist{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	logger.Log.WithField("owner_id", ownerID).WithField("playlist_id", playlist.ID).Info("歌单创建成功")
	return playlist, nil
}

func (s *playlistService) ListByUser(ctx context.Context, userID uint64) ([]model.Playlist, error) {
	return s.playlistRepo.ListByOwner(ctx, userID)
}

func (s *playlistService) Get(ctx context.Context, playlistID, viewerID uint64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.FindWithVideos(ctx, playlistID, viewerID)
	if err != nil {
		return nil, notFoundOr(err, "Playlist not found")
	}
	return playlist, nil
}

func (s *playlistService) owned(ctx context.Context, playlistID, actorID uint64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		return nil, notFoundOr(err, "Playlist not found")
	}
	if playlist.OwnerID != actorID {
		return nil, apperror.Forbidden("You are not allowed to modify this playlist")
	}
	return playlist, nil
}

func (s *playlistService) Update(ctx context.Context, playlistID, actorID uint64, name, description *string) (*model.Playlist, error) {
	if _, err := s.owned(ctx, playlistID, actorID); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if name != nil {
		if v := strings.TrimSpace(*name); v != "" {
			fields["name"] = v
		}
	}
	if description != nil {
		fields["description"] = strings.TrimSpace(*description)
	}
	if err := s.playlistRepo.Update(ctx, playlistID, fields); err != nil {
		return nil, err
	}
	return s.playlistRepo.FindByID(ctx, playlistID)
}

// 删除歌单和成员关系在同一个事务里
func (s *playlistService) Delete(ctx context.Context, playlistID, actorID uint64) error {
	if _, err := s.owned(ctx, playlistID, actorID); err != nil {
		return err
	}
	return s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		return repos.PlaylistRepo.Delete(ctx, playlistID)
	})
}

// 加入歌单：歌单归属自己，视频存在且可见；重复加入不报错
func (s *playlistService) AddVideo(ctx context.Context, playlistID, videoID, actorID uint64) error {
	if _, err := s.owned(ctx, playlistID, actorID); err != nil {
		return err
	}
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return notFoundOr(err, "Video not found")
	}
	if !video.IsPublished && video.OwnerID != actorID {
		return apperror.NotFound("Video not found")
	}
	return s.playlistRepo.AddVideo(ctx, playlistID, videoID)
}

func (s *playlistService) RemoveVideo(ctx context.Context, playlistID, videoID, actorID uint64) error {
	if _, err := s.owned(ctx, playlistID, actorID); err != nil {
		return err
	}
	return s.playlistRepo.RemoveVideo(ctx, playlistID, videoID)
}
