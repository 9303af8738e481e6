package command

import (
	"errors"
	"fmt"

	"github.com/burybell/bucketctl"
	"github.com/burybell/bucketctl/config"
	"github.com/mgutz/ansi"
	"github.com/urfave/cli"
)

type target struct {
	admin  bucketctl.Admin
	bucket string
}

func resolveTarget(c *cli.Context) (*target, error) {
	cfg, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return nil, err
	}
	store, err := cfg.Resolve(c.GlobalString("class"))
	if err != nil {
		return nil, err
	}
	bucket := c.GlobalString("bucket")
	if bucket == "" {
		bucket = store.BucketName()
	}
	return &target{admin: store.Admin(), bucket: bucket}, nil
}

func redCliError(err error) *cli.ExitError {
	return cli.NewExitError(ansi.Color(err.Error(), "red"), 1)
}

// mapFatal turns known backend failures into their user-facing fatal
// messages; anything else exits with its own message.
func mapFatal(err error, bucket string) error {
	switch {
	case errors.Is(err, bucketctl.BucketNotFound):
		return redCliError(fmt.Errorf("bucket %s does not exist", bucket))
	case errors.Is(err, bucketctl.BucketNotEmpty):
		return redCliError(fmt.Errorf("bucket %s is not empty", bucket))
	case errors.Is(err, bucketctl.BucketAlreadyOwned):
		return redCliError(fmt.Errorf("you have already created %s", bucket))
	case errors.Is(err, bucketctl.PolicyNotFound):
		return redCliError(fmt.Errorf("bucket %s has no policy set", bucket))
	case errors.Is(err, bucketctl.PolicyNotSupported):
		return redCliError(fmt.Errorf("bucket %s: policies are not supported by this store", bucket))
	default:
		return cli.NewExitError(err.Error(), 1)
	}
}
