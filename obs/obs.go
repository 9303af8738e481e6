package obs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/burybell/bucketctl"
	"github.com/huaweicloud/huaweicloud-sdk-go-obs/obs"
)

const (
	Name = "obs"
)

type Config struct {
	Region   string `yaml:"region" mapstructure:"region" json:"region"`
	KeyID    string `yaml:"key_id" mapstructure:"key_id" json:"key_id"`
	Secret   string `yaml:"secret" mapstructure:"secret" json:"secret"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" json:"endpoint"`
}

type admin struct {
	config Config
	client *obs.ObsClient
}

func NewAdmin(config Config) (bucketctl.Admin, error) {
	if config.Endpoint == "" {
		config.Endpoint = fmt.Sprintf("https://obs.%s.myhuaweicloud.com", config.Region)
	}
	client, err := obs.New(config.KeyID, config.Secret, config.Endpoint)
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
	_, err := t.client.HeadBucket(bucket)
	if err != nil {
		var obsErr obs.ObsError
		if errors.As(err, &obsErr) && obsErr.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (t *admin) ListBuckets(ctx context.Context) ([]bucketctl.BucketInfo, error) {
	resp, err := t.client.ListBuckets(&obs.ListBucketsInput{})
	if err != nil {
		return nil, err
	}
	var infos = make([]bucketctl.BucketInfo, 0, len(resp.Buckets))
	for _, b := range resp.Buckets {
		infos = append(infos, bucketctl.NewBucketInfo(b.Name))
	}
	return infos, nil
}

func (t *admin) ListEntries(ctx context.Context, bucket string, prefix string, recursive bool) ([]bucketctl.Entry, error) {
	input := &obs.ListObjectsInput{Bucket: bucket}
	input.Prefix = prefix
	input.MaxKeys = 200
	if !recursive {
		input.Delimiter = "/"
	}

	var entries = make([]bucketctl.Entry, 0)
	for {
		resp, err := t.client.ListObjects(input)
		if err != nil {
			return nil, mapError(err)
		}
		for _, cp := range resp.CommonPrefixes {
			entries = append(entries, bucketctl.NewEntry(cp, true))
		}
		for _, o := range resp.Contents {
			entries = append(entries, bucketctl.NewEntry(o.Key, strings.HasSuffix(o.Key, "/")))
		}
		if !resp.IsTruncated {
			return entries, nil
		}
		input.Marker = resp.NextMarker
	}
}

func (t *admin) MakeBucket(ctx context.Context, bucket string) error {
	input := &obs.CreateBucketInput{Bucket: bucket}
	input.Location = t.config.Region
	_, err := t.client.CreateBucket(input)
	return mapError(err)
}

func (t *admin) RemoveBucket(ctx context.Context, bucket string) error {
	_, err := t.client.DeleteBucket(bucket)
	return mapError(err)
}

func (t *admin) GetPolicy(ctx context.Context, bucket string) (string, error) {
	resp, err := t.client.GetBucketPolicy(bucket)
	if err != nil {
		return "", mapError(err)
	}
	return resp.Policy, nil
}

func (t *admin) SetPolicy(ctx context.Context, bucket string, policy bucketctl.Policy) error {
	doc, err := policy.Document(bucket)
	if err != nil {
		return err
	}
	_, err = t.client.SetBucketPolicy(&obs.SetBucketPolicyInput{
		Bucket: bucket,
		Policy: doc,
	})
	return mapError(err)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var obsErr obs.ObsError
	if errors.As(err, &obsErr) {
		switch obsErr.Code {
		case "NoSuchBucket":
			return bucketctl.BucketNotFound
		case "BucketNotEmpty":
			return bucketctl.BucketNotEmpty
		case "BucketAlreadyExists", "BucketAlreadyOwnedByYou":
			return bucketctl.BucketAlreadyOwned
		case "NoSuchBucketPolicy":
			return bucketctl.PolicyNotFound
		}
	}
	return err
}
