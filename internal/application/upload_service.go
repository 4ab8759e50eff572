package application

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/autoforge-api/pkg/helpers"
)

// ModelStorage persists an uploaded 3D model and returns the URL it is served from.
type ModelStorage interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
}

var modelContentTypes = map[string]string{
	".glb":  "model/gltf-binary",
	".gltf": "model/gltf+json",
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

type UploadService struct {
	Storage ModelStorage
	MaxSize int64
	Logger  *logrus.Logger
}

func NewUploadService(storage ModelStorage, maxSize int64, logger *logrus.Logger) *UploadService {
	return &UploadService{Storage: storage, MaxSize: maxSize, Logger: logger}
}

type UploadedModel struct {
	Filename string `json:"filename"`
	ModelURL string `json:"modelUrl"`
	Size     int64  `json:"size"`
}

// ModelFilename builds a collision-free name keeping the original stem and extension.
func ModelFilename(original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	stem := unsafeName.ReplaceAllString(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)), "-")
	stem = strings.Trim(stem, "-")
	if stem == "" {
		stem = "model"
	}
	return fmt.Sprintf("%s-%d-%s%s", stem, now.UnixMilli(), uuid.NewString()[:8], ext)
}

// Upload accepts .glb and .gltf files up to MaxSize bytes.
func (s *UploadService) Upload(ctx context.Context, original string, size int64, r io.Reader) (UploadedModel, error) {
	ext := strings.ToLower(filepath.Ext(original))
	contentType, ok := modelContentTypes[ext]
	if !ok {
		return UploadedModel{}, invalidInput(map[string]string{"model": "only .glb and .gltf files are allowed"})
	}
	if s.MaxSize > 0 && size > s.MaxSize {
		return UploadedModel{}, invalidInput(map[string]string{"model": fmt.Sprintf("file exceeds %d bytes", s.MaxSize)})
	}

	name := ModelFilename(original, time.Now())
	// Never read past MaxSize, whatever the declared size.
	var body io.Reader = r
	if s.MaxSize > 0 {
		body = io.LimitReader(r, s.MaxSize)
	}
	url, err := s.Storage.Save(ctx, name, body, size, contentType)
	if err != nil {
		helpers.LogError(s.Logger, "store model failed", err, logrus.Fields{"filename": name})
		return UploadedModel{}, err
	}
	return UploadedModel{Filename: name, ModelURL: url, Size: size}, nil
}
