// Package archive uploads export files to S3-compatible object storage.
package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
)

type Config struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Endpoint        string // required for wasabi, optional otherwise
	Bucket          string
}

// Configured reports whether enough settings are present to upload.
func (c Config) Configured() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// putObjectAPI is the subset of *s3.Client used here.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Uploader struct {
	client putObjectAPI
	bucket string
}

func NewUploader(ctx context.Context, cfg Config) (*Uploader, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// Wasabi only supports path-style addressing
		if cfg.Provider == ProviderWasabi {
			o.UsePathStyle = true
		}
	})

	return &Uploader{client: client, bucket: cfg.Bucket}, nil
}

// Put stores body under key and returns the s3:// location.
func (u *Uploader) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
}
