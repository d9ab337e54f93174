package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const htmlContentType = "text/html; charset=utf-8"

var ErrUnsafeKey = errors.New("export: key escapes the output root")

// cleanKey rejects keys that are absolute or climb out of their root.
func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != path.Clean(key) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeKey, key)
	}
	return cleaned, nil
}

// DirWriter writes pages below a local directory.
type DirWriter struct {
	Root string
}

func (w DirWriter) WriteFile(_ context.Context, key string, body []byte) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(w.Root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	target := filepath.Join(root, filepath.FromSlash(key))
	if rel, err := filepath.Rel(root, target); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q", ErrUnsafeKey, key)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// PutObjectAPI is the part of the S3 client the writer needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Writer uploads pages to a bucket, optionally under a key prefix.
type S3Writer struct {
	client PutObjectAPI
	bucket string
	prefix string
}

func NewS3Writer(client PutObjectAPI, bucket string, prefix string) *S3Writer {
	return &S3Writer{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// NewS3WriterFromEnv builds the S3 client from the default AWS credential chain.
func NewS3WriterFromEnv(ctx context.Context, region string, bucket string, prefix string) (*S3Writer, error) {
	opts := make([]func(*awsconfig.LoadOptions) error, 0, 1)
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return NewS3Writer(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func (w *S3Writer) WriteFile(ctx context.Context, key string, body []byte) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if w.prefix != "" {
		key = path.Join(w.prefix, key)
	}

	_, err = w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(htmlContentType),
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}
