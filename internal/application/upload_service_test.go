package application_test

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/autoforge-api/internal/application"
)

type memStorage struct {
	name        string
	contentType string
	body        []byte
}

func (m *memStorage) Save(_ context.Context, name string, r io.Reader, _ int64, contentType string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.name, m.contentType, m.body = name, contentType, b
	return "/models/" + name, nil
}

func TestModelFilename(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	name := application.ModelFilename("My Car (v2).GLB", now)
	assert.Regexp(t, regexp.MustCompile(`^My-Car-v2-1700000000123-[0-9a-f]{8}\.glb$`), name)

	assert.True(t, strings.HasPrefix(application.ModelFilename("../../.gltf", now), "model-"))
}

func TestUpload(t *testing.T) {
	store := &memStorage{}
	svc := application.NewUploadService(store, 16, nil)

	res, err := svc.Upload(context.Background(), "car.glb", 4, bytes.NewReader([]byte("glTF")))
	require.NoError(t, err)
	assert.Equal(t, "/models/"+res.Filename, res.ModelURL)
	assert.Equal(t, "model/gltf-binary", store.contentType)
	assert.Equal(t, []byte("glTF"), store.body)
	assert.Equal(t, int64(4), res.Size)
}

func TestUpload_Rejects(t *testing.T) {
	store := &memStorage{}
	svc := application.NewUploadService(store, 16, nil)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "car.obj", 4, strings.NewReader("data"))
	assert.ErrorIs(t, err, application.ErrInvalidInput)

	_, err = svc.Upload(ctx, "car.gltf", 17, strings.NewReader(strings.Repeat("x", 17)))
	assert.ErrorIs(t, err, application.ErrInvalidInput)
	assert.Empty(t, store.name)
}

func TestUpload_NeverReadsPastLimit(t *testing.T) {
	store := &memStorage{}
	svc := application.NewUploadService(store, 8, nil)

	_, err := svc.Upload(context.Background(), "car.glb", 4, strings.NewReader(strings.Repeat("x", 64)))
	require.NoError(t, err)
	assert.Len(t, store.body, 8)
}
