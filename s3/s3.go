package s3

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/burybell/bucketctl"
)

const (
	Name = "s3"
)

type Config struct {
	Region string `yaml:"region" mapstructure:"region" json:"region"`
	KeyID  string `yaml:"key_id" mapstructure:"key_id" json:"key_id"`
	Secret string `yaml:"secret" mapstructure:"secret" json:"secret"`
}

type Admin struct {
	config Config
	client *s3.S3
}

func NewAdmin(config Config) (bucketctl.Admin, error) {
	provider, err := session.NewSession(aws.NewConfig().WithRegion(config.Region).WithCredentials(credentials.NewStaticCredentials(config.KeyID, config.Secret, "")))
	if err != nil {
		return nil, err
	}
	return &Admin{config: config, client: s3.New(provider)}, nil
}

func MustNewAdmin(config Config) bucketctl.Admin {
	admin, err := NewAdmin(config)
	if err != nil {
		panic(err)
	}
	return admin
}

func (t *Admin) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := t.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err != nil {
		var awsErr awserr.Error
		if errors.As(err, &awsErr) {
			switch awsErr.Code() {
			case "NotFound", s3.ErrCodeNoSuchBucket:
				return false, nil
			}
		}
		return false, err
	}
	return true, nil
}

func (t *Admin) ListBuckets(ctx context.Context) ([]bucketctl.BucketInfo, error) {
	resp, err := t.client.ListBucketsWithContext(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, err
	}
	var infos = make([]bucketctl.BucketInfo, 0, len(resp.Buckets))
	for _, b := range resp.Buckets {
		if b.Name != nil {
			infos = append(infos, bucketctl.NewBucketInfo(*b.Name))
		}
	}
	return infos, nil
}

func (t *Admin) ListEntries(ctx context.Context, bucket string, prefix string, recursive bool) ([]bucketctl.Entry, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int64(200),
	}
	if !recursive {
		input.Delimiter = aws.String("/")
	}

	var entries = make([]bucketctl.Entry, 0)
	for {
		resp, err := t.client.ListObjectsV2WithContext(ctx, input)
		if err != nil {
			return nil, mapError(err)
		}
		for _, cp := range resp.CommonPrefixes {
			if cp.Prefix != nil {
				entries = append(entries, bucketctl.NewEntry(*cp.Prefix, true))
			}
		}
		for _, key := range resp.Contents {
			if key.Key != nil {
				entries = append(entries, bucketctl.NewEntry(*key.Key, strings.HasSuffix(*key.Key, "/")))
			}
		}
		if resp.IsTruncated == nil || !*resp.IsTruncated {
			return entries, nil
		}
		input.ContinuationToken = resp.NextContinuationToken
	}
}

func (t *Admin) MakeBucket(ctx context.Context, bucket string) error {
	input := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	if t.config.Region != "" && t.config.Region != "us-east-1" {
		input.CreateBucketConfiguration = &s3.CreateBucketConfiguration{
			LocationConstraint: aws.String(t.config.Region),
		}
	}
	_, err := t.client.CreateBucketWithContext(ctx, input)
	return mapError(err)
}

func (t *Admin) RemoveBucket(ctx context.Context, bucket string) error {
	_, err := t.client.DeleteBucketWithContext(ctx, &s3.DeleteBucketInput{Bucket: aws.String(bucket)})
	return mapError(err)
}

func (t *Admin) GetPolicy(ctx context.Context, bucket string) (string, error) {
	resp, err := t.client.GetBucketPolicyWithContext(ctx, &s3.GetBucketPolicyInput{Bucket: aws.String(bucket)})
	if err != nil {
		return "", mapError(err)
	}
	if resp.Policy == nil {
		return "", bucketctl.PolicyNotFound
	}
	return *resp.Policy, nil
}

func (t *Admin) SetPolicy(ctx context.Context, bucket string, policy bucketctl.Policy) error {
	doc, err := policy.Document(bucket)
	if err != nil {
		return err
	}
	_, err = t.client.PutBucketPolicyWithContext(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(bucket),
		Policy: aws.String(doc),
	})
	return mapError(err)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var awsErr awserr.Error
	if errors.As(err, &awsErr) {
		switch awsErr.Code() {
		case s3.ErrCodeNoSuchBucket, "NotFound":
			return bucketctl.BucketNotFound
		case "BucketNotEmpty":
			return bucketctl.BucketNotEmpty
		case s3.ErrCodeBucketAlreadyOwnedByYou:
			return bucketctl.BucketAlreadyOwned
		case "NoSuchBucketPolicy":
			return bucketctl.PolicyNotFound
		}
	}
	return err
}
