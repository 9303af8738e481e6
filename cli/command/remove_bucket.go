package command

import (
	"context"

	"github.com/burybell/bucketctl"
	"github.com/urfave/cli"
)

type RemoveBucketCommand struct {
}

func NewRemoveBucketCommand() RemoveBucketCommand {
	return RemoveBucketCommand{}
}

func (d RemoveBucketCommand) Cli() cli.Command {
	return cli.Command{
		Name:   "rb",
		Usage:  "remove an empty bucket",
		Action: d.Action,
	}
}

func (d RemoveBucketCommand) Action(c *cli.Context) error {
	t, err := resolveTarget(c)
	if err != nil {
		return redCliError(err)
	}
	if err = RemoveBucket(context.Background(), t.admin, t.bucket); err != nil {
		return mapFatal(err, t.bucket)
	}
	return nil
}

func RemoveBucket(ctx context.Context, admin bucketctl.Admin, bucket string) error {
	return admin.RemoveBucket(ctx, bucket)
}
