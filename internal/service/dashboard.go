package service

import (
	"context"

	"Vidtube/internal/model"
	"Vidtube/internal/repository"
)

// DashboardService 频道作者自己的数据面板
type DashboardService interface {
	Stats(ctx context.Context, ownerID uint64) (*repository.ChannelStats, error)
	Videos(ctx context.Context, ownerID uint64) ([]model.Video, error)
}

type dashboardService struct {
	videoRepo repository.VideoRepository
}

func NewDashboardService(videoRepo repository.VideoRepository) DashboardService {
	return &dashboardService{videoRepo: videoRepo}
}

func (s *dashboardService) Stats(ctx context.Context, ownerID uint64) (*repository.ChannelStats, error) {
	return s.videoRepo.ChannelStats(ctx, ownerID)
}

func (s *dashboardService) Videos(ctx context.Context, ownerID uint64) ([]model.Video, error) {
	return s.videoRepo.ListByOwner(ctx, ownerID)
}
