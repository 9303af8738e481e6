package local_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/burybell/bucketctl"
	"github.com/burybell/bucketctl/local"
	"github.com/stretchr/testify/assert"
)

var ctx = context.Background()

func newAdmin(t *testing.T) (bucketctl.Admin, string) {
	base := t.TempDir()
	return local.MustNewAdmin(local.Config{BasePath: base}), base
}

func putObject(t *testing.T, base string, bucket string, key string) {
	path := filepath.Join(base, bucket, filepath.FromSlash(key))
	assert.NoError(t, os.MkdirAll(filepath.Dir(path), os.ModePerm))
	assert.NoError(t, os.WriteFile(path, []byte("some text"), 0644))
}

func TestAdmin_MakeBucket(t *testing.T) {
	admin, _ := newAdmin(t)

	err := admin.MakeBucket(ctx, "media")
	assert.NoError(t, err)

	exists, err := admin.BucketExists(ctx, "media")
	assert.NoError(t, err)
	assert.True(t, exists)

	err = admin.MakeBucket(ctx, "media")
	assert.ErrorIs(t, err, bucketctl.BucketAlreadyOwned)
}

func TestAdmin_BucketExists(t *testing.T) {
	admin, _ := newAdmin(t)

	exists, err := admin.BucketExists(ctx, "missing")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestAdmin_RemoveBucket(t *testing.T) {
	admin, base := newAdmin(t)

	err := admin.RemoveBucket(ctx, "media")
	assert.ErrorIs(t, err, bucketctl.BucketNotFound)

	assert.NoError(t, admin.MakeBucket(ctx, "media"))
	putObject(t, base, "media", "example.txt")

	err = admin.RemoveBucket(ctx, "media")
	assert.ErrorIs(t, err, bucketctl.BucketNotEmpty)

	assert.NoError(t, os.Remove(filepath.Join(base, "media", "example.txt")))
	assert.NoError(t, admin.RemoveBucket(ctx, "media"))

	exists, err := admin.BucketExists(ctx, "media")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestAdmin_ListBuckets(t *testing.T) {
	admin, _ := newAdmin(t)

	infos, err := admin.ListBuckets(ctx)
	assert.NoError(t, err)
	assert.Empty(t, infos)

	assert.NoError(t, admin.MakeBucket(ctx, "media"))
	assert.NoError(t, admin.MakeBucket(ctx, "static"))

	infos, err = admin.ListBuckets(ctx)
	assert.NoError(t, err)
	var names = make([]string, 0)
	for _, info := range infos {
		names = append(names, info.Name())
	}
	assert.Equal(t, []string{"media", "static"}, names)
}

func TestAdmin_ListBuckets_HidesPolicyDir(t *testing.T) {
	admin, _ := newAdmin(t)

	assert.NoError(t, admin.MakeBucket(ctx, "media"))
	assert.NoError(t, admin.SetPolicy(ctx, "media", bucketctl.PolicyNone))

	infos, err := admin.ListBuckets(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(infos))
	assert.Equal(t, "media", infos[0].Name())
}

func TestAdmin_ListEntries(t *testing.T) {
	admin, base := newAdmin(t)

	_, err := admin.ListEntries(ctx, "media", "", false)
	assert.ErrorIs(t, err, bucketctl.BucketNotFound)

	assert.NoError(t, admin.MakeBucket(ctx, "media"))
	putObject(t, base, "media", "a.txt")
	putObject(t, base, "media", "docs/b.txt")
	putObject(t, base, "media", "docs/sub/c.txt")

	entries, err := admin.ListEntries(ctx, "media", "", false)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(entries))
	assert.Equal(t, "a.txt", entries[0].Name())
	assert.False(t, entries[0].IsDir())
	assert.Equal(t, "docs/", entries[1].Name())
	assert.True(t, entries[1].IsDir())

	entries, err = admin.ListEntries(ctx, "media", "", true)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(entries))
	assert.Equal(t, "a.txt", entries[0].Name())
	assert.Equal(t, "docs/b.txt", entries[1].Name())
	assert.Equal(t, "docs/sub/c.txt", entries[2].Name())

	entries, err = admin.ListEntries(ctx, "media", "docs/", false)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(entries))
	assert.Equal(t, "docs/b.txt", entries[0].Name())
	assert.False(t, entries[0].IsDir())
	assert.Equal(t, "docs/sub/", entries[1].Name())
	assert.True(t, entries[1].IsDir())
}

func TestAdmin_Policy(t *testing.T) {
	admin, _ := newAdmin(t)

	_, err := admin.GetPolicy(ctx, "media")
	assert.ErrorIs(t, err, bucketctl.BucketNotFound)

	err = admin.SetPolicy(ctx, "media", bucketctl.PolicyReadOnly)
	assert.ErrorIs(t, err, bucketctl.BucketNotFound)

	assert.NoError(t, admin.MakeBucket(ctx, "media"))

	_, err = admin.GetPolicy(ctx, "media")
	assert.ErrorIs(t, err, bucketctl.PolicyNotFound)

	assert.NoError(t, admin.SetPolicy(ctx, "media", bucketctl.PolicyReadOnly))

	doc, err := admin.GetPolicy(ctx, "media")
	assert.NoError(t, err)
	assert.Contains(t, doc, "s3:ListBucket")
	assert.Contains(t, doc, "arn:aws:s3:::media")
}

func TestAdmin_Policy_RemovedWithBucket(t *testing.T) {
	admin, _ := newAdmin(t)

	assert.NoError(t, admin.MakeBucket(ctx, "media"))
	assert.NoError(t, admin.SetPolicy(ctx, "media", bucketctl.PolicyGetOnly))
	assert.NoError(t, admin.RemoveBucket(ctx, "media"))

	assert.NoError(t, admin.MakeBucket(ctx, "media"))
	_, err := admin.GetPolicy(ctx, "media")
	assert.ErrorIs(t, err, bucketctl.PolicyNotFound)
}
