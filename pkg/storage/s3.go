package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"VidTube/internal/config"
)

// Asset 是一次上传的产物：可公开访问的URL + 删除句柄（对象Key）
// 删除句柄绝不能出现在API响应里
type Asset struct {
	URL string
	Key string
}

// MediaStore 是媒体存储的抽象，service层依赖接口方便测试时替换
type MediaStore interface {
	// Upload 把本地临时文件上传到远端，无论成败，本地文件都会被删掉
	Upload(ctx context.Context, localPath string) (Asset, error)
	// Delete 按句柄删除远端资源，调用方自行决定是否忽略错误
	Delete(ctx context.Context, key string) error
}

// S3Store 基于S3兼容服务实现MediaStore
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	baseURL  string
}

// NewS3Store 构建指向目标对象存储的客户端，支持自定义endpoint（MinIO等）
func NewS3Store(ctx context.Context, cfg config.Config) (*S3Store, error) {
	if strings.TrimSpace(cfg.S3Bucket) == "" {
		return nil, fmt.Errorf("s3 store: bucket不能为空")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if strings.TrimSpace(cfg.S3Endpoint) != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == s3.ServiceID {
				return aws.Endpoint{URL: cfg.S3Endpoint, SigningRegion: cfg.S3Region}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("加载aws配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	return &S3Store{
		client:   client,
		uploader: uploader,
		bucket:   cfg.S3Bucket,
		baseURL:  strings.TrimSuffix(cfg.S3PublicBaseURL, "/"),
	}, nil
}

// Upload 上传本地文件，对象Key用uuid+原扩展名，避免用户文件名互相覆盖
// 本地临时文件在所有路径上都会被清理（包括上传失败）
func (s *S3Store) Upload(ctx context.Context, localPath string) (Asset, error) {
	// 上传结束后删掉临时文件，失败路径也一样
	defer os.Remove(localPath)

	file, err := os.Open(localPath)
	if err != nil {
		return Asset{}, fmt.Errorf("打开临时文件失败: %w", err)
	}
	defer file.Close()

	ext := filepath.Ext(localPath)
	key := uuid.NewString() + ext

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return Asset{}, fmt.Errorf("上传%s失败: %w", key, err)
	}

	return Asset{URL: s.publicURL(key), Key: key}, nil
}

// Delete 按Key删除对象，调用方把它当作尽力而为的清理动作
func (s *S3Store) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Store) publicURL(key string) string {
	if s.baseURL == "" {
		return key
	}
	return fmt.Sprintf("%s/%s", s.baseURL, key)
}
