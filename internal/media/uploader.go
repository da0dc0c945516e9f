// Package media stores uploaded files on an S3-compatible host and hands back
// their public URLs.
package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Object is a stored file.
type Object struct {
	Key string
	URL string
}

// Uploader is the boundary to the media host. Upload is called at most once
// per request; Delete is only used to undo an upload whose record was never saved.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, size int64, displayName string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// ObjectAPI is the subset of *s3.Client the uploader needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Uploader struct {
	client  ObjectAPI
	bucket  string
	prefix  string
	baseURL string
	now     func() time.Time
}

var _ Uploader = (*S3Uploader)(nil)

// NewS3Uploader returns an uploader writing into bucket. baseURL is the public
// address objects are served from; keys are appended to it.
func NewS3Uploader(client ObjectAPI, bucket, prefix, baseURL string) *S3Uploader {
	return &S3Uploader{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

func (u *S3Uploader) Upload(ctx context.Context, file io.Reader, size int64, displayName string) (*Object, error) {
	key := u.objectKey(displayName)

	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(size),
		Metadata:      map[string]string{"display-name": displayName},
	}
	if ct := mime.TypeByExtension(path.Ext(displayName)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload %q: %w", displayName, err)
	}

	return &Object{Key: key, URL: u.baseURL + "/" + key}, nil
}

func (u *S3Uploader) Delete(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (u *S3Uploader) objectKey(displayName string) string {
	d := u.now()
	name := fmt.Sprintf("%d/%d/%d/%s-%s", d.Year(), d.Month(), d.Day(), uuid.New(), sanitizeName(displayName))
	if u.prefix == "" {
		return name
	}
	return u.prefix + "/" + name
}

// sanitizeName keeps a display name usable as the last segment of an object key.
func sanitizeName(name string) string {
	name = strings.ToLower(path.Base(strings.ReplaceAll(name, "\\", "/")))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-.")
	if out == "" {
		return "file"
	}
	return out
}
