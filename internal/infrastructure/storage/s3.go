package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 uploads models to Amazon S3 (or compatible APIs).
type S3 struct {
	uploader *manager.Uploader
	Bucket   string
	Prefix   string
	// PublicURL overrides the https://<bucket>.s3.<region>.amazonaws.com base.
	PublicURL string
}

type S3Options struct {
	Bucket   string
	Region   string
	Endpoint string
	Profile  string
	Prefix   string
}

// NewS3 loads the default AWS config chain. A custom Endpoint switches to path-style addressing.
func NewS3(ctx context.Context, opts S3Options) (*S3, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(opts.Region),
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(opts.Profile))
	}
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	base := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	if opts.Endpoint != "" {
		base = strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
	}
	return &S3{
		uploader:  manager.NewUploader(client),
		Bucket:    opts.Bucket,
		Prefix:    strings.Trim(opts.Prefix, "/"),
		PublicURL: base,
	}, nil
}

func (s *S3) Save(ctx context.Context, name string, r io.Reader, _ int64, contentType string) (string, error) {
	key := objectKey(s.Prefix, name)
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.PublicURL + "/" + key, nil
}
