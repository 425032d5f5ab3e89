package media

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"Vidtube/internal/config"
	"Vidtube/pkg/logger"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
)

// Kind 决定对象存储里的目录前缀
type Kind string

const (
	KindVideo     Kind = "videos"
	KindThumbnail Kind = "thumbnails"
	KindAvatar    Kind = "avatars"
	KindCover     Kind = "covers"
)

// Asset 上传成功后的媒体资源，Duration只有视频才有
type Asset struct {
	URL      string
	Key      string
	Duration float64
}

// Uploader 媒体托管：上传本地临时文件，按URL删除
type Uploader interface {
	Upload(ctx context.Context, localPath string, kind Kind) (*Asset, error)
	Delete(ctx context.Context, url string) error
}

// DurationProber 读取视频时长
type DurationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

type s3Uploader struct {
	client  s3iface.S3API
	bucket  string
	baseURL string
	prober  DurationProber
}

// NewS3Uploader 连接S3（或MinIO）：1、静态凭证建session 2、配了endpoint就走path-style 3、桶不存在就创建
func NewS3Uploader(cfg *config.Config, prober DurationProber) (Uploader, error) {
	awsConfig := &aws.Config{
		Region:      aws.String(cfg.S3Region),
		Credentials: credentials.NewStaticCredentials(cfg.S3AccessKeyID, cfg.S3SecretKey, ""),
	}
	// 本地开发用MinIO
	if cfg.S3Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.S3Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if strings.HasPrefix(cfg.S3Endpoint, "http://") {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	client := s3.New(sess)

	if _, err := client.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(cfg.S3Bucket)}); err != nil {
		if _, err := client.CreateBucket(&s3.CreateBucketInput{Bucket: aws.String(cfg.S3Bucket)}); err != nil {
			// 别人抢先建好了也会走到这里，只记一下
			logger.Log.WithError(err).WithField("bucket", cfg.S3Bucket).Warn("创建存储桶失败")
		}
	}

	return newS3Uploader(client, cfg.S3Bucket, publicBaseURL(cfg), prober), nil
}

func newS3Uploader(client s3iface.S3API, bucket, baseURL string, prober DurationProber) *s3Uploader {
	return &s3Uploader{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		prober:  prober,
	}
}

// publicBaseURL 对外访问的URL前缀，没配置就按MinIO或AWS的格式拼
func publicBaseURL(cfg *config.Config) string {
	if cfg.S3PublicBaseURL != "" {
		return cfg.S3PublicBaseURL
	}
	if cfg.S3Endpoint != "" {
		return strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}
	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, region)
}

// Upload 上传本地临时文件：1、不管成功失败，最后都删掉本地文件 2、视频先探测时长，探测失败只记日志 3、PutObject
func (u *s3Uploader) Upload(ctx context.Context, localPath string, kind Kind) (*Asset, error) {
	defer func() {
		if err := os.Remove(localPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Log.WithError(err).WithField("path", localPath).Warn("删除本地临时文件失败")
		}
	}()

	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(localPath))
	asset := &Asset{Key: fmt.Sprintf("%s/%s%s", kind, uuid.NewString(), ext)}

	if kind == KindVideo && u.prober != nil {
		duration, err := u.prober.Duration(ctx, localPath)
		if err != nil {
			logger.Log.WithError(err).WithField("path", localPath).Warn("读取视频时长失败，时长记为0")
		} else {
			asset.Duration = duration
		}
	}

	contentType := contentTypeOf(ext)
	_, err = u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(asset.Key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", asset.Key, err)
	}

	asset.URL = u.baseURL + "/" + asset.Key
	return asset, nil
}

// Delete 按URL删对象，不是本桶的URL（比如种子数据里的外链）直接跳过
func (u *s3Uploader) Delete(ctx context.Context, url string) error {
	key, ok := KeyFromURL(u.baseURL, url)
	if !ok {
		logger.Log.WithField("url", url).Debug("非本存储桶的地址，跳过删除")
		return nil
	}
	_, err := u.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// 常见视频格式不一定在系统的mime表里
var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
}

func contentTypeOf(ext string) string {
	if ct, ok := videoContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// KeyFromURL 去掉对外URL前缀得到对象key
func KeyFromURL(baseURL, url string) (string, bool) {
	prefix := strings.TrimRight(baseURL, "/") + "/"
	if baseURL == "" || !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}
