// Package publish uploads an exported catalog to an S3 bucket configured
// for static website hosting.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dustin/go-humanize"
)

// ObjectPutter is the part of the S3 client the publisher needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher writes files under a key prefix of one bucket.
type Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
}

// Result reports an upload.
type Result struct {
	Objects int
	Bytes   int64
}

func (r Result) String() string {
	return fmt.Sprintf("%d object(s), %s", r.Objects, humanize.Bytes(uint64(r.Bytes)))
}

// NewS3Client builds a client from the default AWS credential chain.
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func New(client ObjectPutter, bucket, prefix string) *Publisher {
	return &Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Key maps a path relative to the export directory to its object key.
func (p *Publisher) Key(rel string) string {
	rel = filepath.ToSlash(rel)
	if p.prefix == "" {
		return rel
	}
	return path.Join(p.prefix, rel)
}

// PublishDir uploads every regular file below dir.
func (p *Publisher) PublishDir(ctx context.Context, dir string) (*Result, error) {
	if p.bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	result := &Result{}
	err := filepath.WalkDir(dir, func(file string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, file)
		if err != nil {
			return err
		}
		n, err := p.putFile(ctx, file, p.Key(rel))
		if err != nil {
			return err
		}
		result.Objects++
		result.Bytes += n
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("failed to publish %s: %w", dir, err)
	}

	slog.Info("Published catalog", "bucket", p.bucket, "prefix", p.prefix, "objects", result.Objects)
	return result, nil
}

func (p *Publisher) putFile(ctx context.Context, file, key string) (int64, error) {
	f, err := os.Open(file)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", file, err)
	}

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(ContentType(file)),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upload %s: %w", key, err)
	}
	slog.Debug("Uploaded object", "key", key, "size", info.Size())
	return info.Size(), nil
}

// ContentType guesses the MIME type of a file from its extension.
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".glb":
		return "model/gltf-binary"
	case ".gltf":
		return "model/gltf+json"
	case ".webp":
		return "image/webp"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
