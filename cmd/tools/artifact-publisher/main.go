// cmd/tools/artifact-publisher/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/config"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/database"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/logger"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk/artifactstore"
)

func main() {
	cmd := &cli.Command{
		Name:      "artifact-publisher",
		Usage:     "Validate a directory of model artifacts and publish it to Redis",
		UsageText: "artifact-publisher --dir ./artifacts --redis localhost:6379 --prefix risk:artifacts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Usage: "Directory holding the model artifacts", Value: "./artifacts"},
			&cli.StringFlag{Name: "redis", Usage: "Redis address", Value: "localhost:6379", Sources: cli.EnvVars("DATABASE_REDIS_ADDRESS")},
			&cli.StringFlag{Name: "password", Usage: "Redis password", Sources: cli.EnvVars("DATABASE_REDIS_PASSWORD")},
			&cli.IntFlag{Name: "db", Usage: "Redis database", Value: 0},
			&cli.StringFlag{Name: "prefix", Usage: "Key prefix of the artifacts", Value: "risk:artifacts", Sources: cli.EnvVars("ARTIFACTS_REDIS_PREFIX")},
			&cli.BoolFlag{Name: "dry-run", Usage: "Only validate the bundle"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	log := logger.NewZapAdapter(logger.New("info", "console"))
	src := artifactstore.NewFileSource(cmd.String("dir"))

	if cmd.Bool("dry-run") {
		bundle, err := artifactstore.NewStore(src, log, "").Load(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Bundle %s is valid (%d features)\n", bundle.ModelVersion, len(bundle.FeatureOrder))
		return nil
	}

	rdb, err := database.Connect(ctx, config.RedisConfig{
		Address:  cmd.String("redis"),
		Password: cmd.String("password"),
		DB:       int(cmd.Int("db")),
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	return publish(ctx, src, rdb.Cmdable(), cmd.String("prefix"), log)
}

func publish(ctx context.Context, src artifactstore.Source, client redis.Cmdable, prefix string, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	dst := artifactstore.NewRedisSource(client, prefix)
	bundle, err := artifactstore.Publish(ctx, src, dst, log)
	if err != nil {
		return err
	}
	fmt.Printf("Published bundle %s to %s\n", bundle.ModelVersion, dst.Describe())
	return nil
}
