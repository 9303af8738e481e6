package main

import (
	"os"

	"github.com/burybell/bucketctl/cli/command"
	"github.com/urfave/cli"
)

var version string

func main() {
	app := cli.NewApp()

	app.Version = version

	app.Name = "bucketctl"
	app.HelpName = "bucketctl"
	app.Usage = "verify, list, create and delete object storage buckets"

	app.Flags = availableFlags()

	app.Commands = []cli.Command{
		command.NewMakeBucketCommand().Cli(),
		command.NewRemoveBucketCommand().Cli(),
		command.NewListCommand().Cli(),
		command.NewPolicyCommand().Cli(),
	}

	// Without a subcommand the tool checks that the target bucket exists.
	app.Action = command.NewCheckBucketCommand().Action

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func availableFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:   "config, f",
			Value:  "bucketctl.yml",
			EnvVar: "BUCKETCTL_CONFIG",
			Usage:  "Path to the storage class configuration",
		},
		cli.StringFlag{
			Name:  "class, c",
			Value: "media",
			Usage: "Storage class to modify (media/static are the default class names)",
		},
		cli.StringFlag{
			Name:  "bucket, b",
			Value: "",
			Usage: "Bucket name (uses the storage class bucket if not set)",
		},
	}
}
