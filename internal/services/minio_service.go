package services

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"movie-catalog/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

const presignExpiry = 15 * time.Minute

// MinIOService stores movie posters in a single bucket.
type MinIOService struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string
	logger    *logrus.Logger
}

func NewMinIOService(cfg *config.MinIOConfig, logger *logrus.Logger) (*MinIOService, error) {
	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bucket":   cfg.BucketName,
		"useSSL":   cfg.UseSSL,
	}).Info("MinIO client initialized successfully")

	return &MinIOService{
		client:    minioClient,
		bucket:    cfg.BucketName,
		region:    cfg.Region,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		logger:    logger,
	}, nil
}

// EnsureBucket creates the poster bucket if needed and makes it publicly readable.
func (s *MinIOService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.WithField("bucket", s.bucket).Info("Bucket created successfully")
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	s.logger.WithField("bucket", s.bucket).Info("Bucket policy set to public read")
	return nil
}

// GeneratePresignedURL returns a PUT URL for a fresh object derived from
// filename, and the public URL the poster will be served from.
func (s *MinIOService) GeneratePresignedURL(ctx context.Context, filename, contentType string) (string, string, error) {
	objectPath := uniqueObjectName(filename)

	headers := http.Header{}
	if contentType != "" {
		headers.Set("Content-Type", contentType)
	}

	presignedURL, err := s.client.PresignHeader(ctx, http.MethodPut, s.bucket, objectPath, presignExpiry, nil, headers)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate presigned URL")
		return "", "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"filename":   filename,
		"objectPath": objectPath,
		"expiry":     presignExpiry,
	}).Info("Generated presigned URL")

	return presignedURL.String(), s.publicURL + "/" + objectPath, nil
}

// Owns reports whether path is a public URL inside the poster bucket.
func (s *MinIOService) Owns(path string) bool {
	return s.publicURL != "" && strings.HasPrefix(path, s.publicURL+"/")
}

func (s *MinIOService) DeleteFile(ctx context.Context, objectPath string) error {
	objectPath = s.objectName(objectPath)

	err := s.client.RemoveObject(ctx, s.bucket, objectPath, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.WithError(err).WithField("objectPath", objectPath).Error("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.WithField("objectPath", objectPath).Info("File deleted successfully from MinIO")
	return nil
}

// objectName reduces a public URL or bucket-prefixed path to the object key.
func (s *MinIOService) objectName(path string) string {
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}
	if s.publicURL != "" {
		path = strings.TrimPrefix(path, s.publicURL+"/")
	}
	if strings.Contains(path, "://") {
		path = path[strings.LastIndex(path, "/")+1:]
	}
	return strings.TrimPrefix(path, s.bucket+"/")
}

func uniqueObjectName(filename string) string {
	filename = filepath.Base(filename)
	ext := filepath.Ext(filename)
	nameWithoutExt := strings.TrimSuffix(filename, ext)
	return fmt.Sprintf("%s_%s%s", nameWithoutExt, uuid.New().String()[:8], ext)
}
