package bucketctl

import "errors"

var (
	BucketNotFound     = errors.New("bucket not found")
	BucketNotEmpty     = errors.New("bucket not empty")
	BucketAlreadyOwned = errors.New("bucket already owned by you")
	PolicyNotFound     = errors.New("bucket policy not set")
	PolicyNotSupported = errors.New("bucket policy not supported")
)
