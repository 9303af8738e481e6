package config

import (
	"os"

	"github.com/burybell/bucketctl"
	"github.com/burybell/bucketctl/aliyun"
	"github.com/burybell/bucketctl/local"
	"github.com/burybell/bucketctl/minio"
	"github.com/burybell/bucketctl/obs"
	"github.com/burybell/bucketctl/s3"
	"github.com/burybell/bucketctl/tencent"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Class is one named storage configuration: a store kind, its bucket,
// and the provider settings for that kind.
type Class struct {
	Store   string         `yaml:"store"`
	Bucket  string         `yaml:"bucket"`
	Minio   minio.Config   `yaml:"minio"`
	S3      s3.Config      `yaml:"s3"`
	AliYun  aliyun.Config  `yaml:"aliyun"`
	Tencent tencent.Config `yaml:"tencent"`
	OBS     obs.Config     `yaml:"obs"`
	Local   local.Config   `yaml:"local"`
}

type Config struct {
	Classes map[string]Class  `yaml:"classes"`
	Aliases map[string]string `yaml:"aliases"`
}

func Load(path string) (*Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var config Config
	if err = yaml.Unmarshal(bs, &config); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return &config, nil
}

type store struct {
	name   string
	bucket string
	admin  bucketctl.Admin
}

func (t *store) Name() string {
	return t.name
}

func (t *store) BucketName() string {
	return t.bucket
}

func (t *store) Admin() bucketctl.Admin {
	return t.admin
}

// Resolve maps a class name or alias to a ready Store.
func (t *Config) Resolve(name string) (bucketctl.Store, error) {
	if target, ok := t.Aliases[name]; ok {
		name = target
	}
	class, ok := t.Classes[name]
	if !ok {
		return nil, errors.Errorf("could not find storage class: %s", name)
	}
	if class.Bucket == "" {
		return nil, errors.Errorf("storage class %s has no bucket name", name)
	}
	admin, err := newAdmin(class)
	if err != nil {
		return nil, errors.Wrapf(err, "storage class %s", name)
	}
	return &store{name: class.Store, bucket: class.Bucket, admin: admin}, nil
}

func newAdmin(class Class) (bucketctl.Admin, error) {
	switch class.Store {
	case minio.Name:
		return minio.NewAdmin(class.Minio)
	case s3.Name:
		return s3.NewAdmin(class.S3)
	case aliyun.Name:
		return aliyun.NewAdmin(class.AliYun)
	case tencent.Name:
		return tencent.NewAdmin(class.Tencent)
	case obs.Name:
		return obs.NewAdmin(class.OBS)
	case local.Name:
		return local.NewAdmin(class.Local)
	default:
		return nil, errors.Errorf("%s is not a supported store", class.Store)
	}
}
