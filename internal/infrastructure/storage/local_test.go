package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	l, err := NewLocal(dir, "/models/")
	require.NoError(t, err)

	url, err := l.Save(context.Background(), "car.glb", strings.NewReader("glTF"), 4, "model/gltf-binary")
	require.NoError(t, err)
	assert.Equal(t, "/models/car.glb", url)

	b, err := os.ReadFile(filepath.Join(dir, "car.glb"))
	require.NoError(t, err)
	assert.Equal(t, "glTF", string(b))

	_, err = l.Save(context.Background(), "car.glb", strings.NewReader("again"), 5, "")
	assert.Error(t, err, "existing files are never overwritten")
}

func TestLocalSave_RejectsPaths(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/models")
	require.NoError(t, err)

	_, err = l.Save(context.Background(), "../escape.glb", strings.NewReader("x"), 1, "")
	assert.Error(t, err)
}

func TestGCSObjectKey(t *testing.T) {
	assert.Equal(t, "models/car.glb", objectKey("models", "car.glb"))
	assert.Equal(t, "car.glb", objectKey("", "car.glb"))
	assert.Equal(t, "https://storage.googleapis.com/assets/models/car%20v2.glb", publicGCSURL("assets", "models/car v2.glb"))
}
