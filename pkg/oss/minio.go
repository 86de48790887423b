package oss

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
	// PublicURL prefixes returned object URLs, e.g. http://localhost:9000
	PublicURL string
}

type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinioStore(ctx context.Context, opts MinioOptions) (*MinioStore, error) {
	hlog.Infof("Initializing MinIO client with endpoint: %s, accessKey: %s", opts.Endpoint, opts.AccessKey)

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client")
	}
	if opts.Region == "" {
		opts.Region = "us-east-1" // MinIO默认区域
	}

	// 检查存储桶是否存在，不存在则创建
	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "check bucket error")
	}
	if !exists {
		if err = client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
			return nil, errors.Wrap(err, "create bucket error")
		}
	}

	publicURL := opts.PublicURL
	if publicURL == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + opts.Endpoint
	}
	hlog.Info("Connect Minio Success")
	return &MinioStore{client: client, bucket: opts.Bucket, publicURL: publicURL}, nil
}

func (m *MinioStore) Upload(ctx context.Context, folder, filePath, contentType string) (Object, error) {
	key := objectKey(folder, filePath)
	_, err := m.client.FPutObject(ctx, m.bucket, key, filePath, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return Object{}, errors.Wrapf(err, "upload %s", key)
	}
	return Object{URL: fmt.Sprintf("%s/%s/%s", m.publicURL, m.bucket, key), Key: key}, nil
}

func (m *MinioStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrapf(err, "remove %s", key)
	}
	return nil
}
