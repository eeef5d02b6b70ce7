// Package assets stores uploaded images (avatars, course thumbnails) in an
// S3-compatible bucket. Clients submit images as base64 data URLs; the
// store decodes them, uploads the bytes and hands back the object key plus
// a public URL.
package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/jrjohn/academy-cloud-go/internal/config"
	apperrors "github.com/jrjohn/academy-cloud-go/pkg/errors"
)

// Store uploads and removes binary assets.
type Store interface {
	// Upload decodes a base64 data URL, stores it under the given folder
	// and returns the object key and public URL
	Upload(ctx context.Context, folder, dataURL string) (key string, publicURL string, err error)

	// Delete removes the object with the given key
	Delete(ctx context.Context, key string) error
}

type s3Store struct {
	client        *s3.Client
	uploader      *manager.Uploader
	bucket        string
	region        string
	publicBaseURL string
}

// NewS3Store creates an S3-backed Store from configuration.
func NewS3Store(ctx context.Context, cfg *config.AssetsConfig) (Store, error) {
	awsConfig, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Store{
		client:        client,
		uploader:      manager.NewUploader(client),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

// extensionsByMIME maps the accepted image content types to file extensions.
var extensionsByMIME = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

func (s *s3Store) Upload(ctx context.Context, folder, dataURL string) (string, string, error) {
	contentType, data, err := decodeDataURL(dataURL)
	if err != nil {
		return "", "", err
	}

	ext, ok := extensionsByMIME[contentType]
	if !ok {
		return "", "", apperrors.Validation(fmt.Sprintf("unsupported image type %q", contentType))
	}

	key := fmt.Sprintf("%s/%s.%s", folder, uuid.NewString(), ext)
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", err
	}

	return key, s.publicURL(key), nil
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *s3Store) publicURL(key string) string {
	escaped := url.PathEscape(key)
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.publicBaseURL, "/"), escaped)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}

// decodeDataURL splits a "data:<mime>;base64,<payload>" string into its
// content type and decoded bytes.
func decodeDataURL(dataURL string) (string, []byte, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, apperrors.Validation("image must be a base64 data URL")
	}

	rest := strings.TrimPrefix(dataURL, "data:")
	meta, payload, found := strings.Cut(rest, ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return "", nil, apperrors.Validation("image must be a base64 data URL")
	}

	contentType := strings.TrimSuffix(meta, ";base64")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, apperrors.Validation("image payload is not valid base64")
	}
	return contentType, data, nil
}
