package infra

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tnqbao/gau-ticketing-service/config"
	"github.com/tnqbao/gau-ticketing-service/service"
)

// MinioObjectStore keeps ticket mirrors in a single MinIO (or any S3 compatible) bucket.
type MinioObjectStore struct {
	Client   *minio.Client
	Endpoint string
	Bucket   string
}

func InitMinioObjectStore(cfg *config.EnvConfig) (*MinioObjectStore, error) {
	endpoint := cfg.Minio.Endpoint
	if endpoint == "" {
		return nil, fmt.Errorf("MinIO endpoint is not configured")
	}

	rootUser := cfg.Minio.RootUser
	if rootUser == "" {
		return nil, fmt.Errorf("MinIO root user is not configured")
	}

	rootPassword := cfg.Minio.RootPassword
	if rootPassword == "" {
		return nil, fmt.Errorf("MinIO root password is not configured")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(rootUser, rootPassword, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	return &MinioObjectStore{
		Client:   client,
		Endpoint: endpoint,
		Bucket:   cfg.ObjectStore.MirrorBucket,
	}, nil
}

// EnsureBucket creates the mirror bucket if it does not exist yet.
func (m *MinioObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := m.Client.BucketExists(ctx, m.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}

	if err := m.Client.MakeBucket(ctx, m.Bucket, minio.MakeBucketOptions{}); err != nil {
		// Lost a race with another instance
		exists, errBucketExists := m.Client.BucketExists(ctx, m.Bucket)
		if errBucketExists == nil && exists {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (m *MinioObjectStore) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("objectKey cannot be empty")
	}

	_, err := m.Client.PutObject(ctx, m.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

func (m *MinioObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("objectKey cannot be empty")
	}

	object, err := m.Client.GetObject(ctx, m.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, m.getError(key, err)
	}
	defer object.Close()

	// GetObject is lazy, a missing key only surfaces on the first read
	data, err := io.ReadAll(object)
	if err != nil {
		return nil, m.getError(key, err)
	}
	return data, nil
}

func (m *MinioObjectStore) getError(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", service.ErrObjectNotFound, key)
	}
	return fmt.Errorf("failed to get object: %w", err)
}

func (m *MinioObjectStore) List(ctx context.Context, prefix string) ([]string, error) {
	objectsCh := m.Client.ListObjects(ctx, m.Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var keys []string
	for object := range objectsCh {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		keys = append(keys, object.Key)
	}
	return keys, nil
}

func (m *MinioObjectStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("objectKey cannot be empty")
	}

	if err := m.Client.RemoveObject(ctx, m.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
