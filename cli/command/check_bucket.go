package command

import (
	"context"

	"github.com/burybell/bucketctl"
	"github.com/urfave/cli"
)

type CheckBucketCommand struct {
}

func NewCheckBucketCommand() CheckBucketCommand {
	return CheckBucketCommand{}
}

func (d CheckBucketCommand) Action(c *cli.Context) error {
	t, err := resolveTarget(c)
	if err != nil {
		return redCliError(err)
	}
	if err = CheckBucket(context.Background(), t.admin, t.bucket); err != nil {
		return mapFatal(err, t.bucket)
	}
	return nil
}

// CheckBucket is the default action: succeed silently when the bucket
// exists, fail with BucketNotFound when it does not.
func CheckBucket(ctx context.Context, admin bucketctl.Admin, bucket string) error {
	exists, err := admin.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		return bucketctl.BucketNotFound
	}
	return nil
}
