package handler

import (
	"context"

	"Vidtube/internal/auth"
	"Vidtube/internal/model"
	"Vidtube/internal/repository"
	"Vidtube/internal/service"

	"github.com/stretchr/testify/mock"
)

type mockUserService struct{ mock.Mock }

var _ service.UserService = (*mockUserService)(nil)

func (m *mockUserService) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, email, username, password string) (*model.User, auth.TokenPair, error) {
	args := m.Called(ctx, email, username, password)
	u, _ := args.Get(0).(*model.User)
	return u, args.Get(1).(auth.TokenPair), args.Error(2)
}

func (m *mockUserService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *mockUserService) Logout(ctx context.Context, userID uint64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockUserService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	return m.Called(ctx, userID, oldPassword, newPassword).Error(0)
}

func (m *mockUserService) CurrentUser(ctx context.Context, userID uint64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserService) UpdateAccount(ctx context.Context, userID uint64, fullName, email string) (*model.User, error) {
	args := m.Called(ctx, userID, fullName, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserService) UpdateAvatar(ctx context.Context, userID uint64, localPath string) (*model.User, error) {
	args := m.Called(ctx, userID, localPath)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserService) UpdateCover(ctx context.Context, userID uint64, localPath string) (*model.User, error) {
	args := m.Called(ctx, userID, localPath)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserService) ChannelProfile(ctx context.Context, username string, viewerID uint64) (*repository.ChannelProfile, error) {
	args := m.Called(ctx, username, viewerID)
	p, _ := args.Get(0).(*repository.ChannelProfile)
	return p, args.Error(1)
}

func (m *mockUserService) WatchHistory(ctx context.Context, userID uint64) ([]model.Video, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).([]model.Video)
	return v, args.Error(1)
}

type mockVideoService struct{ mock.Mock }

var _ service.VideoService = (*mockVideoService)(nil)

func (m *mockVideoService) List(ctx context.Context, q repository.VideoListQuery) ([]model.Video, int64, error) {
	args := m.Called(ctx, q)
	v, _ := args.Get(0).([]model.Video)
	return v, args.Get(1).(int64), args.Error(2)
}

func (m *mockVideoService) Publish(ctx context.Context, in service.PublishVideoInput) (*model.Video, error) {
	args := m.Called(ctx, in)
	v, _ := args.Get(0).(*model.Video)
	return v, args.Error(1)
}

func (m *mockVideoService) GetVideoByID(ctx context.Context, videoID, viewerID uint64) (*model.Video, error) {
	args := m.Called(ctx, videoID, viewerID)
	v, _ := args.Get(0).(*model.Video)
	return v, args.Error(1)
}

func (m *mockVideoService) Update(ctx context.Context, in service.UpdateVideoInput) (*model.Video, error) {
	args := m.Called(ctx, in)
	v, _ := args.Get(0).(*model.Video)
	return v, args.Error(1)
}

func (m *mockVideoService) Delete(ctx context.Context, videoID, actorID uint64) error {
	return m.Called(ctx, videoID, actorID).Error(0)
}

func (m *mockVideoService) TogglePublish(ctx context.Context, videoID, actorID uint64) (*model.Video, error) {
	args := m.Called(ctx, videoID, actorID)
	v, _ := args.Get(0).(*model.Video)
	return v, args.Error(1)
}

type mockLikeService struct{ mock.Mock }

var _ service.LikeService = (*mockLikeService)(nil)

func (m *mockLikeService) Toggle(ctx context.Context, userID uint64, target model.LikeTarget) (bool, error) {
	args := m.Called(ctx, userID, target)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeService) LikedVideos(ctx context.Context, userID uint64) ([]model.Video, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).([]model.Video)
	return v, args.Error(1)
}

type mockSubscriptionService struct{ mock.Mock }

var _ service.SubscriptionService = (*mockSubscriptionService)(nil)

func (m *mockSubscriptionService) Toggle(ctx context.Context, subscriberID, channelID uint64) (bool, error) {
	args := m.Called(ctx, subscriberID, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSubscriptionService) ChannelSubscribers(ctx context.Context, channelID, viewerID uint64) (*repository.ChannelProfile, []model.Subscription, error) {
	args := m.Called(ctx, channelID, viewerID)
	p, _ := args.Get(0).(*repository.ChannelProfile)
	s, _ := args.Get(1).([]model.Subscription)
	return p, s, args.Error(2)
}

func (m *mockSubscriptionService) SubscribedChannels(ctx context.Context, subscriberID uint64) ([]model.Subscription, error) {
	args := m.Called(ctx, subscriberID)
	s, _ := args.Get(0).([]model.Subscription)
	return s, args.Error(1)
}

type mockCommentService struct{ mock.Mock }

var _ service.CommentService = (*mockCommentService)(nil)

func (m *mockCommentService) GetComments(ctx context.Context, videoID, viewerID uint64, page, limit int) ([]model.Comment, int64, repository.Pagination, error) {
	args := m.Called(ctx, videoID, viewerID, page, limit)
	c, _ := args.Get(0).([]model.Comment)
	return c, args.Get(1).(int64), args.Get(2).(repository.Pagination), args.Error(3)
}

func (m *mockCommentService) CreateComment(ctx context.Context, videoID, userID uint64, content string) (*model.Comment, error) {
	args := m.Called(ctx, videoID, userID, content)
	c, _ := args.Get(0).(*model.Comment)
	return c, args.Error(1)
}

func (m *mockCommentService) UpdateComment(ctx context.Context, commentID, userID uint64, content string) (*model.Comment, error) {
	args := m.Called(ctx, commentID, userID, content)
	c, _ := args.Get(0).(*model.Comment)
	return c, args.Error(1)
}

func (m *mockCommentService) DeleteComment(ctx context.Context, commentID, userID uint64) error {
	return m.Called(ctx, commentID, userID).Error(0)
}
