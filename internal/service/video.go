package service

import (
	"context"
	"fmt"
	"strings"

	"Vidtube/internal/apperror"
	"Vidtube/internal/data"
	"Vidtube/internal/media"
	"Vidtube/internal/model"
	"Vidtube/internal/repository"
	"Vidtube/pkg/logger"

	"golang.org/x/sync/singleflight"
)

// PublishVideoInput 发布视频，文件都是本地临时路径
type PublishVideoInput struct {
	OwnerID       uint64
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// UpdateVideoInput 修改视频，nil/空字符串表示不改
type UpdateVideoInput struct {
	VideoID       uint64
	ActorID       uint64
	Title         *string
	Description   *string
	ThumbnailPath string
}

type VideoService interface {
	List(ctx context.Context, q repository.VideoListQuery) ([]model.Video, int64, error)
	Publish(ctx context.Context, in PublishVideoInput) (*model.Video, error)
	GetVideoByID(ctx context.Context, videoID, viewerID uint64) (*model.Video, error)
	Update(ctx context.Context, in UpdateVideoInput) (*model.Video, error)
	Delete(ctx context.Context, videoID, actorID uint64) error
	TogglePublish(ctx context.Context, videoID, actorID uint64) (*model.Video, error)
}

type videoService struct {
	sf singleflight.Group

	videoRepo repository.VideoRepository
	uow       data.UnitOfWork
	uploader  media.Uploader
	janitor   MediaJanitor
}

func NewVideoService(videoRepo repository.VideoRepository, uow data.UnitOfWork, uploader media.Uploader, janitor MediaJanitor) VideoService {
	return &videoService{
		videoRepo: videoRepo,
		uow:       uow,
		uploader:  uploader,
		janitor:   janitor,
	}
}

func (s *videoService) List(ctx context.Context, q repository.VideoListQuery) ([]model.Video, int64, error) {
	q.Pagination = repository.NewPagination(q.Page, q.Limit)
	return s.videoRepo.List(ctx, q)
}

// 发布视频：1、视频和封面都必须有 2、先传视频（顺带探测时长）再传封面，后一步失败要清理前一步 3、入库
func (s *videoService) Publish(ctx context.Context, in PublishVideoInput) (*model.Video, error) {
	if in.VideoPath == "" || in.ThumbnailPath == "" {
		return nil, apperror.BadRequest("Video and thumbnail required")
	}
	logCtx := logger.Log.WithField("owner_id", in.OwnerID)

	videoAsset, err := s.uploader.Upload(ctx, in.VideoPath, media.KindVideo)
	if err != nil {
		return nil, apperror.Upstream("Video upload failed", err)
	}
	thumbAsset, err := s.uploader.Upload(ctx, in.ThumbnailPath, media.KindThumbnail)
	if err != nil {
		s.janitor.Discard("publish rollback", videoAsset.URL)
		return nil, apperror.Upstream("Thumbnail upload failed", err)
	}

	video := &model.Video{
		OwnerID:      in.OwnerID,
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		VideoURL:     videoAsset.URL,
		ThumbnailURL: thumbAsset.URL,
		Duration:     videoAsset.Duration,
		IsPublished:  true,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		s.janitor.Discard("publish rollback", videoAsset.URL, thumbAsset.URL)
		return nil, err
	}
	logCtx.WithField("video_id", video.ID).WithField("duration", video.Duration).Info("视频发布成功")
	return video, nil
}

// 根据videoID查找视频：1、查找Redis缓存 2、通过SingleFlight进行数据库查找 3、未发布的视频只有作者自己能看到
func (s *videoService) GetVideoByID(ctx context.Context, videoID, viewerID uint64) (*model.Video, error) {
	video, err := s.load(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, apperror.NotFound("Video not found")
	}
	return video, nil
}

func (s *videoService) load(ctx context.Context, videoID uint64) (*model.Video, error) {
	video, err := s.videoRepo.GetVideoCache(ctx, videoID)
	if err == nil && video != nil {
		return video, nil
	}
	// 不是redis中没有，而是Redis本身出错了，记日志后降级查库
	if err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("读取视频缓存失败")
	}

	// 缓存未命中，同一时间对同一个视频的查询只放一个去数据库
	key := fmt.Sprintf("get_video_%d", videoID)
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		// 不跟随第一个调用者的取消，否则它断开会连累共享结果的其他请求
		sfCtx := context.WithoutCancel(ctx)
		dbVideo, dbErr := s.videoRepo.FindByID(sfCtx, videoID)
		if dbErr != nil {
			return nil, dbErr
		}
		// 查询成功后，将返回的dbVideo写回缓存
		if err := s.videoRepo.SetVideoCache(sfCtx, dbVideo); err != nil {
			logger.Log.WithError(err).WithField("video_id", videoID).Warn("写入视频缓存失败")
		}
		return dbVideo, nil
	})
	if err != nil {
		return nil, notFoundOr(err, "Video not found")
	}
	// 共享结果，返回副本，防止调用方互相改
	shared := *result.(*model.Video)
	return &shared, nil
}

// ownedVideo 修改类操作直接查库：不存在404，不是作者403
func (s *videoService) ownedVideo(ctx context.Context, videoID, actorID uint64) (*model.Video, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, notFoundOr(err, "Video not found")
	}
	if video.OwnerID != actorID {
		return nil, apperror.Forbidden("You are not allowed to modify this video")
	}
	return video, nil
}

// 修改视频：1、校验归属 2、有新封面先上传 3、更新并删缓存 4、旧封面交给清理队列
func (s *videoService) Update(ctx context.Context, in UpdateVideoInput) (*model.Video, error) {
	video, err := s.ownedVideo(ctx, in.VideoID, in.ActorID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		if title := strings.TrimSpace(*in.Title); title != "" {
			fields["title"] = title
		}
	}
	if in.Description != nil {
		if desc := strings.TrimSpace(*in.Description); desc != "" {
			fields["description"] = desc
		}
	}
	var newThumb string
	if in.ThumbnailPath != "" {
		asset, err := s.uploader.Upload(ctx, in.ThumbnailPath, media.KindThumbnail)
		if err != nil {
			return nil, apperror.Upstream("Thumbnail upload failed", err)
		}
		newThumb = asset.URL
		fields["thumbnail_url"] = newThumb
	}

	if err := s.videoRepo.Update(ctx, video.ID, fields); err != nil {
		s.janitor.Discard("update rollback", newThumb)
		return nil, err
	}
	s.invalidate(ctx, video.ID)
	if newThumb != "" {
		s.janitor.Discard("thumbnail replaced", video.ThumbnailURL)
	}
	return s.reload(ctx, video.ID)
}

// 删除视频：一个事务里软删视频和评论、硬删视频和评论上的点赞、移出所有歌单和观看记录；提交后再清缓存、投递媒体清理
func (s *videoService) Delete(ctx context.Context, videoID, actorID uint64) error {
	video, err := s.ownedVideo(ctx, videoID, actorID)
	if err != nil {
		return err
	}

	err = s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		commentIDs, err := repos.CommentRepo.IDsByVideo(ctx, videoID)
		if err != nil {
			return err
		}
		if err := repos.LikeRepo.DeleteByTargets(ctx, model.LikeTargetComment, commentIDs); err != nil {
			return err
		}
		if err := repos.LikeRepo.DeleteByTargets(ctx, model.LikeTargetVideo, []uint64{videoID}); err != nil {
			return err
		}
		if err := repos.CommentRepo.DeleteByVideo(ctx, videoID); err != nil {
			return err
		}
		if err := repos.PlaylistRepo.RemoveVideoEverywhere(ctx, videoID); err != nil {
			return err
		}
		if err := repos.UserRepo.DeleteWatchHistoryByVideo(ctx, videoID); err != nil {
			return err
		}
		return repos.VideoRepo.SoftDelete(ctx, videoID)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, videoID)
	s.janitor.Discard("video deleted", video.VideoURL, video.ThumbnailURL)
	logger.Log.WithField("video_id", videoID).WithField("owner_id", actorID).Info("视频已删除")
	return nil
}

func (s *videoService) TogglePublish(ctx context.Context, videoID, actorID uint64) (*model.Video, error) {
	if _, err := s.ownedVideo(ctx, videoID, actorID); err != nil {
		return nil, err
	}
	if err := s.videoRepo.TogglePublished(ctx, videoID); err != nil {
		return nil, err
	}
	s.invalidate(ctx, videoID)
	return s.reload(ctx, videoID)
}

func (s *videoService) reload(ctx context.Context, videoID uint64) (*model.Video, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, notFoundOr(err, "Video not found")
	}
	return video, nil
}

// 删缓存失败只会让旧数据最多多活一个过期周期，记日志即可
func (s *videoService) invalidate(ctx context.Context, videoID uint64) {
	if err := s.videoRepo.DelVideoCache(ctx, videoID); err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("删除视频缓存失败")
	}
}
