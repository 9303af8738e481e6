package tencent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/burybell/bucketctl"
	"github.com/tencentyun/cos-go-sdk-v5"
)

const (
	Name = "tencent"
)

type Config struct {
	Region string `yaml:"region" mapstructure:"region" json:"region"`
	KeyID  string `yaml:"key_id" mapstructure:"key_id" json:"key_id"`
	Secret string `yaml:"secret" mapstructure:"secret" json:"secret"`
}

type admin struct {
	config Config
	client *cos.Client
}

func NewAdmin(config Config) (bucketctl.Admin, error) {
	su, err := url.Parse(fmt.Sprintf("https://cos.%s.myqcloud.com", config.Region))
	if err != nil {
		return nil, err
	}
	b := &cos.BaseURL{ServiceURL: su}
	client := cos.NewClient(b, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  config.KeyID,
			SecretKey: config.Secret,
		},
	})
	return &admin{config: config, client: client}, nil
}

func MustNewAdmin(config Config) bucketctl.Admin {
	a, err := NewAdmin(config)
	if err != nil {
		panic(err)
	}
	return a
}

func (t *admin) bucketClient(bucket string) *cos.Client {
	bucketURL, _ := url.Parse(fmt.Sprintf("https://%s.cos.%s.myqcloud.com", bucket, t.config.Region))
	return cos.NewClient(&cos.BaseURL{
		ServiceURL: t.client.BaseURL.ServiceURL,
		BucketURL:  bucketURL,
	}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  t.config.KeyID,
			SecretKey: t.config.Secret,
		},
	})
}

func (t *admin) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := t.bucketClient(bucket).Bucket.Head(ctx)
	if err != nil {
		if cos.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (t *admin) ListBuckets(ctx context.Context) ([]bucketctl.BucketInfo, error) {
	resp, _, err := t.client.Service.Get(ctx)
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
	client := t.bucketClient(bucket)

	var delimiter = "/"
	if recursive {
		delimiter = ""
	}

	var entries = make([]bucketctl.Entry, 0)
	var marker = ""
	for {
		resp, _, err := client.Bucket.Get(ctx, &cos.BucketGetOptions{
			Prefix:    prefix,
			Delimiter: delimiter,
			Marker:    marker,
			MaxKeys:   200,
		})
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
		marker = resp.NextMarker
	}
}

func (t *admin) MakeBucket(ctx context.Context, bucket string) error {
	_, err := t.bucketClient(bucket).Bucket.Put(ctx, nil)
	return mapError(err)
}

func (t *admin) RemoveBucket(ctx context.Context, bucket string) error {
	_, err := t.bucketClient(bucket).Bucket.Delete(ctx)
	return mapError(err)
}

// COS bucket policies use the CAM grammar rather than S3 documents, so
// the policy level enum cannot be applied here.
func (t *admin) GetPolicy(ctx context.Context, bucket string) (string, error) {
	return "", bucketctl.PolicyNotSupported
}

func (t *admin) SetPolicy(ctx context.Context, bucket string, policy bucketctl.Policy) error {
	return bucketctl.PolicyNotSupported
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if cos.IsNotFoundError(err) {
		return bucketctl.BucketNotFound
	}
	var errResp *cos.ErrorResponse
	if errors.As(err, &errResp) {
		switch errResp.Code {
		case "BucketNotEmpty":
			return bucketctl.BucketNotEmpty
		case "BucketAlreadyExists", "BucketAlreadyOwnedByYou":
			return bucketctl.BucketAlreadyOwned
		}
	}
	return err
}
