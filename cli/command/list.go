package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/burybell/bucketctl"
	"github.com/urfave/cli"
)

type ListCommand struct {
}

func NewListCommand() ListCommand {
	return ListCommand{}
}

func (d ListCommand) Cli() cli.Command {
	return cli.Command{
		Name:  "ls",
		Usage: "list bucket objects or buckets",
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "buckets",
				Usage: "list buckets instead of files",
			},
			cli.BoolFlag{
				Name:  "dirs",
				Usage: "include directories",
			},
			cli.BoolFlag{
				Name:  "files",
				Usage: "include files",
			},
			cli.BoolFlag{
				Name:  "recursive, r",
				Usage: "find files recursive",
			},
			cli.StringFlag{
				Name:  "prefix, p",
				Usage: "path prefix",
			},
			cli.BoolFlag{
				Name:  "quiet, q",
				Usage: "suppress the summary line",
			},
		},
		Action: d.Action,
	}
}

func (d ListCommand) Action(c *cli.Context) error {
	t, err := resolveTarget(c)
	if err != nil {
		return redCliError(err)
	}

	if c.Bool("buckets") {
		if err = ListBuckets(context.Background(), t.admin, os.Stdout); err != nil {
			return mapFatal(err, t.bucket)
		}
		return nil
	}

	opts := ListOptions{
		Prefix:    c.String("prefix"),
		Dirs:      c.Bool("dirs"),
		Files:     c.Bool("files"),
		Recursive: c.Bool("recursive"),
		Quiet:     c.Bool("quiet"),
	}
	if !opts.Dirs && !opts.Files {
		opts.Dirs = true
		opts.Files = true
	}
	if err = ListEntries(context.Background(), t.admin, t.bucket, opts, os.Stdout, os.Stderr); err != nil {
		return mapFatal(err, t.bucket)
	}
	return nil
}

func ListBuckets(ctx context.Context, admin bucketctl.Admin, out io.Writer) error {
	buckets, err := admin.ListBuckets(ctx)
	if err != nil {
		return err
	}
	for _, b := range buckets {
		fmt.Fprintln(out, b.Name())
	}
	return nil
}

type ListOptions struct {
	Prefix    string
	Dirs      bool
	Files     bool
	Recursive bool
	Quiet     bool
}

func ListEntries(ctx context.Context, admin bucketctl.Admin, bucket string, opts ListOptions, out io.Writer, errOut io.Writer) error {
	entries, err := admin.ListEntries(ctx, bucket, opts.Prefix, opts.Recursive)
	if err != nil {
		return err
	}
	var nFiles, nDirs int
	for _, entry := range entries {
		if entry.IsDir() {
			nDirs++
			if opts.Dirs {
				fmt.Fprintln(out, entry.Name())
			}
		} else {
			nFiles++
			if opts.Files {
				fmt.Fprintln(out, entry.Name())
			}
		}
	}
	if !opts.Quiet {
		fmt.Fprintf(errOut, "%d files and %d directories\n", nFiles, nDirs)
	}
	return nil
}
