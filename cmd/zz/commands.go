package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
)

var errUsage = errors.New("usage")

func bucketFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    "bucket",
		Aliases: []string{"b"},
		Usage:   usage,
	}
}

// positional returns between min and max positional arguments and the
// selected bucket. A -b/--bucket flag is accepted after the positional
// arguments as well as before them.
func positional(cmd *cli.Command, minArgs, maxArgs int) ([]string, string, error) {
	args := cmd.Args().Slice()
	hasBucket := slices.ContainsFunc(cmd.Flags, func(f cli.Flag) bool {
		return slices.Contains(f.Names(), "bucket")
	})

	var bucket string
	if hasBucket {
		var err error
		if args, bucket, err = splitBucketFlag(args); err != nil {
			return nil, "", err
		}
		if bucket == "" {
			bucket = cmd.String("bucket")
		}
	} else if i := slices.Index(args, "--"); i >= 0 {
		args = slices.Delete(args, i, i+1)
	}
	if len(args) < minArgs || len(args) > maxArgs {
		return nil, "", fmt.Errorf("%w: %s %s", errUsage, cmd.FullName(), cmd.ArgsUsage)
	}
	return args, bucket, nil
}

// splitBucketFlag removes a -b/--bucket flag that follows positional
// arguments and returns its value. Arguments after "--" are passed through
// as positional.
func splitBucketFlag(args []string) ([]string, string, error) {
	var (
		rest   []string
		bucket string
	)
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			rest = append(rest, args[i+1:]...)
			break
		}
		switch {
		case a == "-b" || a == "--bucket" || a == "-bucket":
			if i+1 >= len(args) {
				return nil, "", fmt.Errorf("%w: flag %s needs a bucket name", errUsage, a)
			}
			bucket = args[i+1]
			i++
		case strings.HasPrefix(a, "--bucket="):
			bucket = strings.TrimPrefix(a, "--bucket=")
		case strings.HasPrefix(a, "-b="):
			bucket = strings.TrimPrefix(a, "-b=")
		default:
			rest = append(rest, a)
		}
	}
	return rest, bucket, nil
}

func bucketCommand() *cli.Command {
	return &cli.Command{
		Name:  "bucket",
		Usage: "Manage buckets",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Track a directory as a bucket",
				ArgsUsage: "<NAME> <DIR>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					args, _, err := positional(cmd, 2, 2)
					if err != nil {
						return err
					}
					app, err := openApp(cmd)
					if err != nil {
						return err
					}
					return app.BucketAdd(ctx, args[0], args[1])
				},
			},
			{
				Name:      "default",
				Usage:     "Get or set the default bucket",
				ArgsUsage: "[NAME]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "unset",
						Usage: "Clear the default bucket",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					args, _, err := positional(cmd, 0, 1)
					if err != nil {
						return err
					}
					app, err := openApp(cmd)
					if err != nil {
						return err
					}
					switch {
					case cmd.Bool("unset"):
						return app.BucketUnsetDefault(ctx)
					case len(args) == 1:
						return app.BucketSetDefault(ctx, args[0])
					default:
						return app.BucketDefault(ctx)
					}
				},
			},
			{
				Name:      "forget",
				Usage:     "Stop tracking a bucket (its contents are kept)",
				ArgsUsage: "<NAME>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					args, _, err := positional(cmd, 1, 1)
					if err != nil {
						return err
					}
					app, err := openApp(cmd)
					if err != nil {
						return err
					}
					return app.BucketForget(ctx, args[0])
				},
			},
			{
				Name:  "ls",
				Usage: "List buckets",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if _, _, err := positional(cmd, 0, 0); err != nil {
						return err
					}
					app, err := openApp(cmd)
					if err != nil {
						return err
					}
					return app.BucketList(ctx)
				},
			},
		},
	}
}

func lsCommand() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "List directories",
		ArgsUsage: "[-b BUCKET_NAME]",
		Flags:     []cli.Flag{bucketFlag("List directories in this bucket")},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, bucket, err := positional(cmd, 0, 0)
			if err != nil {
				return err
			}
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			return app.List(ctx, bucket)
		},
	}
}

func mkdirCommand() *cli.Command {
	return &cli.Command{
		Name:      "mkdir",
		Usage:     "Make a new date-prefixed directory",
		ArgsUsage: "<NAME> [-b BUCKET_NAME]",
		Flags:     []cli.Flag{bucketFlag("Select bucket to create the directory in")},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args, bucket, err := positional(cmd, 1, 1)
			if err != nil {
				return err
			}
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			return app.MakeDir(ctx, args[0], bucket)
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Print directories as they are created or removed",
		ArgsUsage: "[-b BUCKET_NAME]",
		Flags:     []cli.Flag{bucketFlag("Watch only this bucket")},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, bucket, err := positional(cmd, 0, 0)
			if err != nil {
				return err
			}
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			return app.Watch(ctx, bucket)
		},
	}
}
