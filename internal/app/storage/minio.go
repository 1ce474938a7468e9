package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gestic/internal/app/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// URLExpiry is the lifetime of presigned download links.
const URLExpiry = time.Hour

type MinIOClient struct {
	client     *minio.Client
	bucketName string
	prefix     string
}

// NewMinIOClient connects to MinIO and creates the bucket when missing.
func NewMinIOClient(ctx context.Context, cfg config.MinIOConfig) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logrus.Infof("Bucket %s created successfully", cfg.Bucket)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "catalog"
	}
	return &MinIOClient{
		client:     client,
		bucketName: cfg.Bucket,
		prefix:     prefix,
	}, nil
}

// ObjectName builds a unique object name: <prefix>_<uuid8>_<unix><ext>.
func ObjectName(prefix, originalFilename string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%d%s",
		prefix,
		uuid.New().String()[:8],
		now.Unix(),
		filepath.Ext(originalFilename))
}

func contentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	}
	return "application/octet-stream"
}

// UploadFile stores data under a fresh object name and returns that name.
func (m *MinIOClient) UploadFile(ctx context.Context, data []byte, originalFilename string) (string, error) {
	name := ObjectName(m.prefix, originalFilename, time.Now())

	_, err := m.client.PutObject(ctx, m.bucketName, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(originalFilename),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	logrus.Infof("File %s uploaded successfully", name)
	return name, nil
}

func (m *MinIOClient) DeleteFile(ctx context.Context, name string) error {
	err := m.client.RemoveObject(ctx, m.bucketName, name, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logrus.Infof("File %s deleted successfully", name)
	return nil
}

// GetFileURL returns a presigned download URL valid for URLExpiry.
func (m *MinIOClient) GetFileURL(ctx context.Context, name string) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucketName, name, URLExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url.String(), nil
}

func (m *MinIOClient) FileExists(ctx context.Context, name string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucketName, name, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file: %w", err)
	}

	return true, nil
}
