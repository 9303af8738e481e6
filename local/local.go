package local

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/burybell/bucketctl"
)

const (
	Name = "local"
)

// policyDir is hidden so it never shows up as a bucket.
const policyDir = ".policies"

type Config struct {
	BasePath string `yaml:"base_path" mapstructure:"base_path" json:"base_path"`
}

type admin struct {
	config Config
}

func NewAdmin(config Config) (bucketctl.Admin, error) {
	stat, err := os.Stat(config.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			err = os.MkdirAll(config.BasePath, os.ModePerm)
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	} else {
		if !stat.IsDir() {
			return nil, errors.New("base path is not a directory")
		}
	}
	return &admin{config: config}, nil
}

func MustNewAdmin(config Config) bucketctl.Admin {
	a, err := NewAdmin(config)
	if err != nil {
		panic(err)
	}
	return a
}

func (t *admin) bucketPath(bucket string) string {
	return filepath.Join(t.config.BasePath, bucket)
}

func (t *admin) policyPath(bucket string) string {
	return filepath.Join(t.config.BasePath, policyDir, bucket+".json")
}

func (t *admin) BucketExists(ctx context.Context, bucket string) (bool, error) {
	stat, err := os.Stat(t.bucketPath(bucket))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return stat.IsDir(), nil
}

func (t *admin) ListBuckets(ctx context.Context) ([]bucketctl.BucketInfo, error) {
	dirents, err := os.ReadDir(t.config.BasePath)
	if err != nil {
		return nil, err
	}
	var infos = make([]bucketctl.BucketInfo, 0, len(dirents))
	for _, dirent := range dirents {
		if !dirent.IsDir() || strings.HasPrefix(dirent.Name(), ".") {
			continue
		}
		infos = append(infos, bucketctl.NewBucketInfo(dirent.Name()))
	}
	return infos, nil
}

func (t *admin) ListEntries(ctx context.Context, bucket string, prefix string, recursive bool) ([]bucketctl.Entry, error) {
	exists, err := t.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, bucketctl.BucketNotFound
	}

	root := t.bucketPath(bucket)
	var keys = make([]string, 0)
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if recursive {
		var entries = make([]bucketctl.Entry, 0)
		sort.Strings(keys)
		for _, key := range keys {
			if strings.HasPrefix(key, prefix) {
				entries = append(entries, bucketctl.NewEntry(key, false))
			}
		}
		return entries, nil
	}

	// Delimiter semantics: nested keys collapse into one entry per
	// immediate child directory.
	var isDir = make(map[string]bool)
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		if idx := strings.Index(rest, "/"); idx >= 0 {
			isDir[prefix+rest[:idx+1]] = true
		} else {
			isDir[key] = false
		}
	}
	var names = make([]string, 0, len(isDir))
	for name := range isDir {
		names = append(names, name)
	}
	sort.Strings(names)
	var entries = make([]bucketctl.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, bucketctl.NewEntry(name, isDir[name]))
	}
	return entries, nil
}

func (t *admin) MakeBucket(ctx context.Context, bucket string) error {
	if bucket == "" || strings.HasPrefix(bucket, ".") {
		return fmt.Errorf("invalid bucket name: %q", bucket)
	}
	exists, err := t.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return bucketctl.BucketAlreadyOwned
	}
	return os.Mkdir(t.bucketPath(bucket), os.ModePerm)
}

func (t *admin) RemoveBucket(ctx context.Context, bucket string) error {
	exists, err := t.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		return bucketctl.BucketNotFound
	}
	dirents, err := os.ReadDir(t.bucketPath(bucket))
	if err != nil {
		return err
	}
	if len(dirents) > 0 {
		return bucketctl.BucketNotEmpty
	}
	if err = os.Remove(t.bucketPath(bucket)); err != nil {
		return err
	}
	_ = os.Remove(t.policyPath(bucket))
	return nil
}

func (t *admin) GetPolicy(ctx context.Context, bucket string) (string, error) {
	exists, err := t.BucketExists(ctx, bucket)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", bucketctl.BucketNotFound
	}
	bs, err := os.ReadFile(t.policyPath(bucket))
	if err != nil {
		if os.IsNotExist(err) {
			return "", bucketctl.PolicyNotFound
		}
		return "", err
	}
	return string(bs), nil
}

func (t *admin) SetPolicy(ctx context.Context, bucket string, policy bucketctl.Policy) error {
	exists, err := t.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		return bucketctl.BucketNotFound
	}
	doc, err := policy.Document(bucket)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Join(t.config.BasePath, policyDir), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(t.policyPath(bucket), []byte(doc), 0644)
}
