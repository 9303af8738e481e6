package s3_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/burybell/bucketctl"
	"github.com/burybell/bucketctl/s3"
	"github.com/stretchr/testify/assert"
)

var ctx = context.Background()

type Config struct {
	S3           s3.Config `json:"s3"`
	S3BucketName string    `json:"s3_bucket_name"`
}

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
	admin := s3.MustNewAdmin(config.S3)

	name := config.S3BucketName + "-lifecycle"

	err := admin.MakeBucket(ctx, name)
	assert.NoError(t, err)

	exists, err := admin.BucketExists(ctx, name)
	assert.NoError(t, err)
	assert.True(t, exists)

	err = admin.SetPolicy(ctx, name, bucketctl.PolicyReadOnly)
	assert.NoError(t, err)

	doc, err := admin.GetPolicy(ctx, name)
	assert.NoError(t, err)
	assert.Contains(t, doc, "s3:ListBucket")

	err = admin.RemoveBucket(ctx, name)
	assert.NoError(t, err)

	exists, err = admin.BucketExists(ctx, name)
	assert.NoError(t, err)
	assert.False(t, exists)
}
