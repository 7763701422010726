package client

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Aashish23092/tds-renamer/config"
)

// S3Client uploads renamed files to an S3-compatible bucket.
type S3Client struct {
	api    *minio.Client
	bucket string
	prefix string
}

func NewS3Client(cfg config.S3Config) (*S3Client, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	return &S3Client{
		api:    minioClient,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

func (c *S3Client) Save(ctx context.Context, key string, data io.Reader, size int64) error {
	objectKey := c.objectKey(key)
	_, err := c.api.PutObject(ctx, c.bucket, objectKey, data, size, minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", objectKey, err)
	}
	return nil
}

func (c *S3Client) objectKey(key string) string {
	if c.prefix == "" {
		return key
	}
	return path.Join(c.prefix, key)
}

func (c *S3Client) Destination() string {
	if c.prefix == "" {
		return "s3://" + c.bucket
	}
	return "s3://" + c.bucket + "/" + c.prefix
}
