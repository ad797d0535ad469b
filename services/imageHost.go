package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Kariqs/storefront-api/utils"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-resty/resty/v2"
)

// ImageHost is the external service that stores product image files.
type ImageHost interface {
	// ObjectID derives the host's identifier for a stored image location.
	ObjectID(location string) (string, bool)
	Delete(ctx context.Context, objectID string) error
}

// CallbackHost asks the storefront's own upload endpoint to drop the file
// from the CDN.
type CallbackHost struct {
	client *resty.Client
}

func NewCallbackHost(publicURL string) *CallbackHost {
	client := resty.New().
		SetBaseURL(strings.TrimRight(publicURL, "/")).
		SetTimeout(15 * time.Second)
	return &CallbackHost{client: client}
}

func (h *CallbackHost) ObjectID(location string) (string, bool) {
	return utils.PublicIDFromURL(location)
}

func (h *CallbackHost) Delete(ctx context.Context, objectID string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("publicId", objectID).
		Delete("/api/upload")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("image deletion failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	return nil
}

// s3DeleteAPI is the part of the S3 client S3Host uses.
type s3DeleteAPI interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Host struct {
	client s3DeleteAPI
	bucket string
}

// NewS3Host loads the default AWS configuration (env, shared config, role).
func NewS3Host(ctx context.Context, bucket string) (*S3Host, error) {
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is not set")
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	return &S3Host{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// ObjectID accepts virtual-hosted (bucket.s3.amazonaws.com/key) and
// path-style (s3.amazonaws.com/bucket/key) object URLs.
func (h *S3Host) ObjectID(location string) (string, bool) {
	u, err := url.Parse(location)
	if err != nil || u.Path == "" {
		return "", false
	}
	key := strings.TrimPrefix(u.Path, "/")
	key = strings.TrimPrefix(key, h.bucket+"/")
	if key == "" {
		return "", false
	}
	return key, true
}

func (h *S3Host) Delete(ctx context.Context, objectID string) error {
	_, err := h.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(objectID),
	})
	return err
}
