package bucketctl

import "context"

// Store is a configured storage class: an admin client plus the
// bucket it operates on by default.
type Store interface {
	Name() string
	BucketName() string
	Admin() Admin
}

// Admin covers the bucket-level operations of an object storage backend.
type Admin interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	ListBuckets(ctx context.Context) ([]BucketInfo, error)
	ListEntries(ctx context.Context, bucket string, prefix string, recursive bool) ([]Entry, error)
	MakeBucket(ctx context.Context, bucket string) error
	RemoveBucket(ctx context.Context, bucket string) error
	GetPolicy(ctx context.Context, bucket string) (string, error)
	SetPolicy(ctx context.Context, bucket string, policy Policy) error
}

type BucketInfo interface {
	Name() string
}

type bucketInfo string

func NewBucketInfo(name string) BucketInfo {
	return bucketInfo(name)
}

func (t bucketInfo) Name() string {
	return string(t)
}

// Entry is one listed item under a prefix. Directory entries only show
// up in non-recursive listings and carry a trailing slash in their name.
type Entry interface {
	Name() string
	IsDir() bool
}

type entry struct {
	name string
	dir  bool
}

func NewEntry(name string, dir bool) Entry {
	return &entry{name: name, dir: dir}
}

func (t *entry) Name() string {
	return t.name
}

func (t *entry) IsDir() bool {
	return t.dir
}
