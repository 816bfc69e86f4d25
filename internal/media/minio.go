package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"pawguard/internal/config"
	"pawguard/pkg/e"
)

// MinioUploader stores evidence photos in an S3-compatible bucket and
// returns the public URL used as the ticket's evidence reference.
type MinioUploader struct {
	client     *minio.Client
	bucket     string
	publicBase string
	logger     *slog.Logger
}

func NewMinioUploader(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*MinioUploader, error) {
	const op = "media.NewMinioUploader"

	client, err := minio.New(cfg.Media.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Media.AccessKey, cfg.Media.SecretKey, ""),
		Secure: cfg.Media.UseSSL,
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Media.Bucket)
	if err != nil {
		return nil, e.Wrap(op+": bucket check", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Media.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, e.Wrap(op+": make bucket", err)
		}
	}
	logger.Info("media bucket ready", slog.String("bucket", cfg.Media.Bucket))

	return &MinioUploader{
		client:     client,
		bucket:     cfg.Media.Bucket,
		publicBase: cfg.Media.PublicBaseURL,
		logger:     logger,
	}, nil
}

func (u *MinioUploader) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	const op = "media.MinioUploader.Upload"

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("evidence/%s/%s%s",
		time.Now().UTC().Format("2006-01-02"),
		uuid.NewString(),
		path.Ext(filename),
	)

	_, err := u.client.PutObject(ctx, u.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		u.logger.Error("evidence upload failed",
			slog.String("op", op),
			slog.String("object", objectName),
			slog.Any("error", err),
		)
		return "", fmt.Errorf("%s: %w", op, e.ErrEvidenceUploadFailed)
	}

	return fmt.Sprintf("%s/%s/%s", u.publicBase, u.bucket, objectName), nil
}
