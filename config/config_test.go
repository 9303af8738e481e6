package config_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/burybell/bucketctl/config"
	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "bucketctl.yml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "classes: [not a map")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	base := t.TempDir()
	path := writeConfig(t, fmt.Sprintf(`
classes:
  media:
    store: local
    bucket: media
    local:
      base_path: %s
  static:
    store: local
    bucket: static
    local:
      base_path: %s
aliases:
  m: media
`, base, base))

	cfg, err := config.Load(path)
	assert.NoError(t, err)

	store, err := cfg.Resolve("media")
	assert.NoError(t, err)
	assert.Equal(t, "local", store.Name())
	assert.Equal(t, "media", store.BucketName())
	assert.NotNil(t, store.Admin())

	store, err = cfg.Resolve("static")
	assert.NoError(t, err)
	assert.Equal(t, "static", store.BucketName())

	store, err = cfg.Resolve("m")
	assert.NoError(t, err)
	assert.Equal(t, "media", store.BucketName())
}

func TestResolve_UnknownClass(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "classes: {}"))
	assert.NoError(t, err)

	_, err = cfg.Resolve("media")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "could not find storage class: media")
}

func TestResolve_UnsupportedStore(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
classes:
  media:
    store: gcs
    bucket: media
`))
	assert.NoError(t, err)

	_, err = cfg.Resolve("media")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "gcs is not a supported store")
}

func TestResolve_MissingBucket(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
classes:
  media:
    store: local
`))
	assert.NoError(t, err)

	_, err = cfg.Resolve("media")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "has no bucket name")
}
