package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Mirror copies processed uploads to a bucket so a CDN can serve them.
type S3Mirror struct {
	client *s3.Client
	bucket string
}

// NewS3Mirror loads AWS credentials from the default chain.
func NewS3Mirror(ctx context.Context, bucket, region string) (*S3Mirror, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &S3Mirror{client: s3.NewFromConfig(awsCfg), bucket: bucket}, nil
}

// Put uploads the file at filePath under key.
func (m *S3Mirror) Put(ctx context.Context, key string, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return fmt.Errorf("putting s3://%s/%s: %w", m.bucket, key, err)
	}
	return nil
}

// Delete removes key from the bucket.
func (m *S3Mirror) Delete(ctx context.Context, key string) error {
	_, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting s3://%s/%s: %w", m.bucket, key, err)
	}
	return nil
}
