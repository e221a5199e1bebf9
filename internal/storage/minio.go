package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"docreview/internal/config"
	"docreview/internal/model"
)

// minioStore implements DocumentStore on an S3-compatible backend (MinIO,
// AWS S3, etc.) with objects keyed <category>/documents/<name>.
// It is safe for concurrent use by multiple goroutines.
type minioStore struct {
	client     *minio.Client
	bucket     string
	categories map[string]struct{}
}

// NewMinIO creates an S3-compatible document store backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig, categories []string) (DocumentStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	ms := &minioStore{client: cli, bucket: cfg.Bucket, categories: set}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return ms, nil
}

func (m *minioStore) key(category, name string) string {
	return path.Join(category, documentsDirName, name)
}

func (m *minioStore) checkCategory(category string) error {
	if _, ok := m.categories[category]; !ok {
		return fmt.Errorf("%w: %s", model.ErrUnknownCategory, category)
	}
	return nil
}

func (m *minioStore) List(ctx context.Context, category string) ([]string, error) {
	if err := m.checkCategory(category); err != nil {
		return nil, err
	}
	prefix := m.key(category, "") + "/"
	var names []string
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		names = append(names, strings.TrimPrefix(obj.Key, prefix))
	}
	sort.Strings(names)
	return names, nil
}

func (m *minioStore) Get(ctx context.Context, category, name string) (io.ReadCloser, ObjectInfo, error) {
	if err := m.checkCategory(category); err != nil {
		return nil, ObjectInfo{}, err
	}
	if !safeName(name) {
		return nil, ObjectInfo{}, fmt.Errorf("%w: %s", model.ErrNotFound, name)
	}
	obj, err := m.client.GetObject(ctx, m.bucket, m.key(category, name), minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("get object: %w", err)
	}
	// Fetch stat to populate info and surface missing keys; avoid reading
	// content into memory.
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ObjectInfo{}, fmt.Errorf("%w: %s/%s", model.ErrNotFound, category, name)
		}
		return nil, ObjectInfo{}, fmt.Errorf("stat object: %w", err)
	}
	info := ObjectInfo{
		Name:         name,
		Size:         st.Size,
		ContentType:  st.ContentType,
		LastModified: st.LastModified,
	}
	return obj, info, nil
}

func (m *minioStore) Put(ctx context.Context, category, name string, r io.Reader, size int64) error {
	if err := m.checkCategory(category); err != nil {
		return err
	}
	if !safeName(name) {
		return fmt.Errorf("%w: invalid document name %q", model.ErrPersistence, name)
	}
	key := m.key(category, name)

	// No compare-and-swap on plain S3 puts; a stat-first check is the
	// closest available no-overwrite guarantee.
	if _, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{}); err == nil {
		return fmt.Errorf("%w: %s/%s", model.ErrAlreadyExists, category, name)
	} else if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return fmt.Errorf("%w: stat object: %v", model.ErrPersistence, err)
	}

	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return fmt.Errorf("%w: put object: %v", model.ErrPersistence, err)
	}
	return nil
}

func (m *minioStore) Ping(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("object storage unavailable: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s is gone", m.bucket)
	}
	return nil
}
