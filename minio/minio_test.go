package minio_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/burybell/bucketctl"
	"github.com/burybell/bucketctl/minio"
	"github.com/stretchr/testify/assert"
)

var ctx = context.Background()

type Config struct {
	Minio           minio.Config `json:"minio"`
	MinioBucketName string       `json:"minio_bucket_name"`
}

// Lifecycle tests run against a live endpoint configured in
// ../config.json and are skipped when it is absent.
func loadConfig(t *testing.T) Config {
	f, err := os.Open("../config.json")
	if err != nil {
		t.Skip("no config.json")
	}
	defer f.Close()

	var config Config
	err = json.NewDecoder(f).Decode(&config)
	assert.NoError(t, err)
	return config
}

func TestAdmin_BucketLifecycle(t *testing.T) {
	config := loadConfig(t)
	admin := minio.MustNewAdmin(config.Minio)

	name := config.MinioBucketName + "-lifecycle"

	err := admin.MakeBucket(ctx, name)
	assert.NoError(t, err)

	err = admin.MakeBucket(ctx, name)
	assert.ErrorIs(t, err, bucketctl.BucketAlreadyOwned)

	exists, err := admin.BucketExists(ctx, name)
	assert.NoError(t, err)
	assert.True(t, exists)

	infos, err := admin.ListBuckets(ctx)
	assert.NoError(t, err)
	var names = make([]string, 0)
	for _, info := range infos {
		names = append(names, info.Name())
	}
	assert.Contains(t, names, name)

	_, err = admin.GetPolicy(ctx, name)
	assert.ErrorIs(t, err, bucketctl.PolicyNotFound)

	err = admin.SetPolicy(ctx, name, bucketctl.PolicyGetOnly)
	assert.NoError(t, err)

	doc, err := admin.GetPolicy(ctx, name)
	assert.NoError(t, err)
	assert.Contains(t, doc, "s3:GetObject")

	err = admin.RemoveBucket(ctx, name)
	assert.NoError(t, err)

	err = admin.RemoveBucket(ctx, name)
	assert.ErrorIs(t, err, bucketctl.BucketNotFound)
}

func TestAdmin_ListEntries(t *testing.T) {
	config := loadConfig(t)
	admin := minio.MustNewAdmin(config.Minio)

	entries, err := admin.ListEntries(ctx, config.MinioBucketName, "", false)
	assert.NoError(t, err)
	for _, entry := range entries {
		assert.NotEmpty(t, entry.Name())
	}
}
