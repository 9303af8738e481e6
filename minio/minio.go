package minio

import (
	"context"
	"errors"
	"strings"

	"github.com/burybell/bucketctl"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	Name = "minio"
)

type Config struct {
	Region   string `yaml:"region" mapstructure:"region" json:"region"`
	KeyID    string `yaml:"key_id" mapstructure:"key_id" json:"key_id"`
	Secret   string `yaml:"secret" mapstructure:"secret" json:"secret"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" json:"endpoint"`
	UseSSL   bool   `yaml:"use_ssl" mapstructure:"use_ssl" json:"use_ssl"`
}

type Admin struct {
	config Config
	client *minio.Client
}

func NewAdmin(config Config) (bucketctl.Admin, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.KeyID, config.Secret, ""),
		Secure: config.UseSSL,
		Region: config.Region,
	})
	if err != nil {
		return nil, err
	}
	return &Admin{config: config, client: client}, nil
}

func MustNewAdmin(config Config) bucketctl.Admin {
	admin, err := NewAdmin(config)
	if err != nil {
		panic(err)
	}
	return admin
}

func (t *Admin) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return t.client.BucketExists(ctx, bucket)
}

func (t *Admin) ListBuckets(ctx context.Context) ([]bucketctl.BucketInfo, error) {
	buckets, err := t.client.ListBuckets(ctx)
	if err != nil {
		return nil, err
	}
	var infos = make([]bucketctl.BucketInfo, 0, len(buckets))
	for _, b := range buckets {
		infos = append(infos, bucketctl.NewBucketInfo(b.Name))
	}
	return infos, nil
}

func (t *Admin) ListEntries(ctx context.Context, bucket string, prefix string, recursive bool) ([]bucketctl.Entry, error) {
	var entries = make([]bucketctl.Entry, 0)
	objects := t.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: recursive,
	})

	for object := range objects {
		if object.Err != nil {
			return nil, mapError(object.Err)
		}
		entries = append(entries, bucketctl.NewEntry(object.Key, strings.HasSuffix(object.Key, "/")))
	}
	return entries, nil
}

func (t *Admin) MakeBucket(ctx context.Context, bucket string) error {
	return mapError(t.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: t.config.Region}))
}

func (t *Admin) RemoveBucket(ctx context.Context, bucket string) error {
	return mapError(t.client.RemoveBucket(ctx, bucket))
}

func (t *Admin) GetPolicy(ctx context.Context, bucket string) (string, error) {
	policy, err := t.client.GetBucketPolicy(ctx, bucket)
	if err != nil {
		return "", mapError(err)
	}
	// GetBucketPolicy swallows NoSuchBucketPolicy and hands back an
	// empty document.
	if policy == "" {
		return "", bucketctl.PolicyNotFound
	}
	return policy, nil
}

func (t *Admin) SetPolicy(ctx context.Context, bucket string, policy bucketctl.Policy) error {
	doc, err := policy.Document(bucket)
	if err != nil {
		return err
	}
	return mapError(t.client.SetBucketPolicy(ctx, bucket, doc))
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var minioErr minio.ErrorResponse
	if errors.As(err, &minioErr) {
		switch minioErr.Code {
		case "NoSuchBucket":
			return bucketctl.BucketNotFound
		case "BucketNotEmpty":
			return bucketctl.BucketNotEmpty
		case "BucketAlreadyOwnedByYou":
			return bucketctl.BucketAlreadyOwned
		case "NoSuchBucketPolicy":
			return bucketctl.PolicyNotFound
		}
	}
	return err
}
