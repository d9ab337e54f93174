package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/a-h/templ"
	"postpage/internal/config"
	"postpage/internal/export"
	"postpage/internal/gql"
	"postpage/internal/logging"
	"postpage/internal/posts"
	"postpage/internal/web"
)

func main() {
	var outDir string
	var bucket string
	var prefix string

	flag.StringVar(&outDir, "out", "", "directory to write posts/{slug}/index.html into")
	flag.StringVar(&bucket, "bucket", "", "S3 bucket to upload pages to (instead of -out)")
	flag.StringVar(&prefix, "prefix", "", "key prefix inside the S3 bucket")
	flag.Parse()

	if err := run(context.Background(), outDir, bucket, prefix); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "export: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, outDir string, bucket string, prefix string) error {
	outDir = strings.TrimSpace(outDir)
	bucket = strings.TrimSpace(bucket)
	if (outDir == "") == (bucket == "") {
		return errors.New("exactly one of -out or -bucket is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)

	client, err := gql.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	service := posts.NewService(client, cfg.RootURL)

	var writer export.Writer = export.DirWriter{Root: outDir}
	if bucket != "" {
		s3Writer, err := export.NewS3WriterFromEnv(ctx, cfg.AWSRegion, bucket, prefix)
		if err != nil {
			return err
		}
		writer = s3Writer
	}

	render := func(post posts.Post) templ.Component {
		return web.RenderStaticPost(post, cfg.RootURL)
	}

	written, err := export.New(service, writer, render, logger).Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("static export complete", "pages", written, "out", outDir, "bucket", bucket)
	return nil
}
