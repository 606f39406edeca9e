package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/config"
)

const (
	s3Scheme           = "s3://"
	imageURLExpiration = 15 * time.Minute
)

// S3ImageResolver presigns images stored as s3://<bucket>/<key> in the
// configured bucket. Other values are returned unchanged.
type S3ImageResolver struct {
	s3Config *config.S3Config
	logger   *zap.Logger
}

// NewS3ImageResolver creates a resolver for the bucket in s3Config
func NewS3ImageResolver(s3Config *config.S3Config, logger *zap.Logger) *S3ImageResolver {
	return &S3ImageResolver{s3Config: s3Config, logger: logger}
}

// Resolve returns a URL for image. An object that cannot be presigned
// resolves to the empty string.
func (r *S3ImageResolver) Resolve(ctx context.Context, image string) string {
	bucket, key, ok := parseS3Reference(image)
	if !ok {
		return image
	}
	if bucket != r.s3Config.BucketName {
		r.logger.Warn("recipe image in unknown bucket", zap.String("bucket", bucket))
		return ""
	}

	url, err := r.s3Config.GeneratePresignedURL(ctx, key, imageURLExpiration)
	if err != nil {
		r.logger.Error("failed to presign recipe image", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}

func parseS3Reference(image string) (bucket, key string, ok bool) {
	if !strings.HasPrefix(image, s3Scheme) {
		return "", "", false
	}
	bucket, key, found := strings.Cut(strings.TrimPrefix(image, s3Scheme), "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
