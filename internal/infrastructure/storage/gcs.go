package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCS uploads models to a Google Cloud Storage bucket under Prefix.
// Objects are expected to be publicly readable through the bucket policy.
type GCS struct {
	Client *gcs.Client
	Bucket string
	Prefix string
}

// NewGCSClient creates a client from a service-account file, or from
// Application Default Credentials when credsPath is empty.
func NewGCSClient(ctx context.Context, credsPath string) (*gcs.Client, error) {
	opts := []option.ClientOption{option.WithScopes(gcs.ScopeReadWrite)}
	if credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	return gcs.NewClient(ctx, opts...)
}

func NewGCS(client *gcs.Client, bucket, prefix string) (*GCS, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs bucket is required")
	}
	return &GCS{Client: client, Bucket: bucket, Prefix: strings.Trim(prefix, "/")}, nil
}

func (g *GCS) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	key := objectKey(g.Prefix, name)
	w := g.Client.Bucket(g.Bucket).Object(key).If(gcs.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = contentType
	// model names are unique, so they can be cached for good
	w.CacheControl = "public, max-age=31536000, immutable"
	if size > 0 && size < int64(w.ChunkSize) {
		w.ChunkSize = 0 // single request upload
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return publicGCSURL(g.Bucket, key), nil
}

func publicGCSURL(bucket, key string) string {
	u := url.URL{Scheme: "https", Host: "storage.googleapis.com", Path: "/" + bucket + "/" + key}
	return u.String()
}

func objectKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
