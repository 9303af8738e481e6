package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/burybell/bucketctl"
	"github.com/urfave/cli"
)

type MakeBucketCommand struct {
}

func NewMakeBucketCommand() MakeBucketCommand {
	return MakeBucketCommand{}
}

func (d MakeBucketCommand) Cli() cli.Command {
	return cli.Command{
		Name:   "mb",
		Usage:  "make bucket (defaults to the configured class bucket)",
		Action: d.Action,
	}
}

func (d MakeBucketCommand) Action(c *cli.Context) error {
	t, err := resolveTarget(c)
	if err != nil {
		return redCliError(err)
	}
	if err = MakeBucket(context.Background(), t.admin, t.bucket, os.Stderr); err != nil {
		return mapFatal(err, t.bucket)
	}
	return nil
}

func MakeBucket(ctx context.Context, admin bucketctl.Admin, bucket string, errOut io.Writer) error {
	if err := admin.MakeBucket(ctx, bucket); err != nil {
		return err
	}
	fmt.Fprintf(errOut, "created bucket: %s\n", bucket)
	return nil
}
