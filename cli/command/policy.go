package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/burybell/bucketctl"
	"github.com/urfave/cli"
)

type PolicyCommand struct {
}

func NewPolicyCommand() PolicyCommand {
	return PolicyCommand{}
}

func (d PolicyCommand) Cli() cli.Command {
	var values = make([]string, 0)
	for _, policy := range bucketctl.Policies() {
		values = append(values, policy.String())
	}
	return cli.Command{
		Name:  "policy",
		Usage: "get or set bucket policy",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "set",
				Usage: fmt.Sprintf("set bucket policy (%s)", strings.Join(values, ", ")),
			},
		},
		Action: d.Action,
	}
}

func (d PolicyCommand) Action(c *cli.Context) error {
	if c.IsSet("set") {
		// Validate before touching the backend.
		policy, err := bucketctl.ParsePolicy(c.String("set"))
		if err != nil {
			return redCliError(err)
		}
		t, err := resolveTarget(c)
		if err != nil {
			return redCliError(err)
		}
		if err = SetPolicy(context.Background(), t.admin, t.bucket, policy); err != nil {
			return mapFatal(err, t.bucket)
		}
		return nil
	}

	t, err := resolveTarget(c)
	if err != nil {
		return redCliError(err)
	}
	if err = GetPolicy(context.Background(), t.admin, t.bucket, os.Stdout); err != nil {
		return mapFatal(err, t.bucket)
	}
	return nil
}

func SetPolicy(ctx context.Context, admin bucketctl.Admin, bucket string, policy bucketctl.Policy) error {
	return admin.SetPolicy(ctx, bucket, policy)
}

// GetPolicy fetches the current policy document and pretty-prints it.
func GetPolicy(ctx context.Context, admin bucketctl.Admin, bucket string, out io.Writer) error {
	doc, err := admin.GetPolicy(ctx, bucket)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err = json.Indent(&buf, []byte(doc), "", "  "); err != nil {
		fmt.Fprintln(out, doc)
		return nil
	}
	fmt.Fprintln(out, buf.String())
	return nil
}
