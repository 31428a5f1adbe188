// Package export uploads finished flow maps to S3-compatible storage.
package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/Hilthkess/flow-map-painter/internal/config"
)

const uploadTimeout = 30 * time.Second

// Uploader pushes rendered flow maps to a bucket.
type Uploader struct {
	client *s3.S3
	bucket string
	prefix string
	now    func() time.Time
}

// NewUploader builds an uploader from the export settings. Static
// credentials and a custom endpoint support S3-compatible stores.
func NewUploader(cfg config.ExportConfig) (*Uploader, error) {
	awsCfg := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("creating S3 session: %w", err)
	}

	return &Uploader{
		client: s3.New(sess),
		bucket: cfg.Bucket,
		prefix: cfg.KeyPrefix,
		now:    time.Now,
	}, nil
}

// Key builds the object key for a named flow map: the configured prefix,
// a timestamp, and the base name.
func (u *Uploader) Key(name string) string {
	stamp := u.now().UTC().Format("2006-01-02T15-04-05")
	return path.Join(u.prefix, stamp+"_"+path.Base(name))
}

// UploadPNG encodes the image as PNG and uploads it under Key(name).
// Returns the object key written.
func (u *Uploader) UploadPNG(ctx context.Context, img image.Image, name string) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", name, err)
	}
	key := u.Key(name)
	if err := u.put(ctx, buf.Bytes(), key); err != nil {
		return "", err
	}
	return key, nil
}

func (u *Uploader) put(ctx context.Context, data []byte, key string) error {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}
