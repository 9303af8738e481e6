package aliyun

import (
	"context"
	"errors"
	"fmt"
	"strings"

	aliyun "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/burybell/bucketctl"
)

const (
	Name = "aliyun"
)

type Config struct {
	Region   string `yaml:"region" mapstructure:"region" json:"region"`
	KeyID    string `yaml:"key_id" mapstructure:"key_id" json:"key_id"`
	Secret   string `yaml:"secret" mapstructure:"secret" json:"secret"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" json:"endpoint"`
}

type admin struct {
	config Config
	client *aliyun.Client
}

func NewAdmin(config Config) (bucketctl.Admin, error) {
	if config.Endpoint == "" {
		config.Endpoint = fmt.Sprintf("https://oss-%s.aliyuncs.com", config.Region)
	}
	client, err := aliyun.New(config.Endpoint, config.KeyID, config.Secret)
	if err != nil {
		return nil, err
	}
	return &admin{config: config, client: client}, nil
}

func MustNewAdmin(config Config) bucketctl.Admin {
	a, err := NewAdmin(config)
	if err != nil {
		panic(err)
	}
	return a
}

func (t *admin) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return t.client.IsBucketExist(bucket)
}

func (t *admin) ListBuckets(ctx context.Context) ([]bucketctl.BucketInfo, error) {
	var infos = make([]bucketctl.BucketInfo, 0)
	var marker = ""
	for {
		resp, err := t.client.ListBuckets(aliyun.Marker(marker), aliyun.MaxKeys(200))
		if err != nil {
			return nil, err
		}
		for _, b := range resp.Buckets {
			infos = append(infos, bucketctl.NewBucketInfo(b.Name))
		}
		if !resp.IsTruncated {
			return infos, nil
		}
		marker = resp.NextMarker
	}
}

func (t *admin) ListEntries(ctx context.Context, bucket string, prefix string, recursive bool) ([]bucketctl.Entry, error) {
	bkt, err := t.client.Bucket(bucket)
	if err != nil {
		return nil, mapError(err)
	}

	options := []aliyun.Option{aliyun.Prefix(prefix), aliyun.MaxKeys(200)}
	if !recursive {
		options = append(options, aliyun.Delimiter("/"))
	}

	var entries = make([]bucketctl.Entry, 0)
	var marker = ""
	for {
		objects, err := bkt.ListObjects(append(options, aliyun.Marker(marker))...)
		if err != nil {
			return nil, mapError(err)
		}
		for _, cp := range objects.CommonPrefixes {
			entries = append(entries, bucketctl.NewEntry(cp, true))
		}
		for _, o := range objects.Objects {
			entries = append(entries, bucketctl.NewEntry(o.Key, strings.HasSuffix(o.Key, "/")))
		}
		if !objects.IsTruncated {
			return entries, nil
		}
		marker = objects.NextMarker
	}
}

func (t *admin) MakeBucket(ctx context.Context, bucket string) error {
	return mapError(t.client.CreateBucket(bucket))
}

func (t *admin) RemoveBucket(ctx context.Context, bucket string) error {
	return mapError(t.client.DeleteBucket(bucket))
}

func (t *admin) GetPolicy(ctx context.Context, bucket string) (string, error) {
	policy, err := t.client.GetBucketPolicy(bucket)
	if err != nil {
		return "", mapError(err)
	}
	return policy, nil
}

func (t *admin) SetPolicy(ctx context.Context, bucket string, policy bucketctl.Policy) error {
	doc, err := policy.Document(bucket)
	if err != nil {
		return err
	}
	return mapError(t.client.SetBucketPolicy(bucket, doc))
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var serverError aliyun.ServiceError
	if errors.As(err, &serverError) {
		switch serverError.Code {
		case "NoSuchBucket":
			return bucketctl.BucketNotFound
		case "BucketNotEmpty":
			return bucketctl.BucketNotEmpty
		case "BucketAlreadyExists":
			return bucketctl.BucketAlreadyOwned
		case "NoSuchBucketPolicy":
			return bucketctl.PolicyNotFound
		}
	}
	return err
}
