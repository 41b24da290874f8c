package podcaster

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/boltdb/bolt"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewBoltDB opens bolt db file, creates parent folder if needed
func NewBoltDB(dbFile string) (*bolt.DB, error) {
	if dir := filepath.Dir(dbFile); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("make db folder %s: %w", dir, err)
		}
	}
	db, err := bolt.Open(dbFile, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db %s: %w", dbFile, err)
	}
	return db, nil
}

// NewS3Client makes minio client for s3 compatible storage
func NewS3Client(endpoint, region, key, secret string, secure bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: secure,
		Region: region,
	})
}

// NewPollyClient makes Amazon Polly client. Empty key falls back to default aws credentials chain.
func NewPollyClient(ctx context.Context, region, key, secret string) (*polly.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if key != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(awscreds.NewStaticCredentialsProvider(key, secret, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return polly.NewFromConfig(cfg), nil
}
