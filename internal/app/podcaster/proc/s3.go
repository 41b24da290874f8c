package proc

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/minio/minio-go/v7"
)

// S3Store store
type S3Store struct {
	Client   *minio.Client
	Location string
	Bucket   string
}

// ArchiveDocument puts uploaded document to s3 storage and returns its location
func (s *S3Store) ArchiveDocument(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	info, err := s.uploadData(ctx, objectName, data, contentType)
	if err != nil {
		return "", err
	}
	return info.Location, nil
}

// UploadAudio puts narrated track to s3 storage and returns its location
func (s *S3Store) UploadAudio(ctx context.Context, objectName string, data []byte) (string, error) {
	info, err := s.uploadData(ctx, objectName, data, "audio/mp3")
	if err != nil {
		return "", err
	}
	log.Printf("[INFO] audio %s uploaded, size %d", objectName, info.Size)
	return info.Location, nil
}

// DeleteDocument from s3 storage
func (s *S3Store) DeleteDocument(ctx context.Context, objectName string) error {
	exists, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.Bucket, err)
	}
	if !exists {
		return nil
	}
	return s.Client.RemoveObject(ctx, s.Bucket, objectName, minio.RemoveObjectOptions{})
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
	exists, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.Bucket, err)
	}
	if exists {
		return nil
	}
	log.Printf("[INFO] create bucket %s in %s", s.Bucket, s.Location)
	if err := s.Client.MakeBucket(ctx, s.Bucket, minio.MakeBucketOptions{Region: s.Location}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.Bucket, err)
	}
	return nil
}

func (s *S3Store) uploadData(ctx context.Context, objectName string, data []byte, contentType string) (*minio.UploadInfo, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	uploadInfo, err := s.Client.PutObject(ctx, s.Bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, err
	}

	if uploadInfo.Location == "" {
		location, err := s.getLocation(ctx, objectName)
		if err != nil {
			return nil, fmt.Errorf("get location of %s in bucket %s: %w", objectName, s.Bucket, err)
		}
		uploadInfo.Location = location
	}
	return &uploadInfo, nil
}

func (s *S3Store) getLocation(ctx context.Context, objectName string) (string, error) {
	endpoint := s.Client.EndpointURL()

	statInfo, err := s.Client.StatObject(ctx, s.Bucket, objectName, minio.StatObjectOptions{})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(endpoint.String(), "/"), s.Bucket, statInfo.Key), nil
}
