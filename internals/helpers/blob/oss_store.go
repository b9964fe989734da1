package blob

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"fdp_backend/internals/configs"
)

type OSSStore struct {
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string
}

func NewOSSStore(cfg configs.Storage) (*OSSStore, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(cfg.OSSBucket); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Printf("[OSS] warn: skip location check due to AccessDenied (bucket=%s). Continuing.", cfg.OSSBucket)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", cfg.OSSBucket, loc)
	}

	return &OSSStore{
		Bucket:     bkt,
		Endpoint:   cfg.OSSEndpoint,
		BucketName: cfg.OSSBucket,
		PublicBase: strings.TrimRight(cfg.OSSPublicBase, "/"),
	}, nil
}

func (s *OSSStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	key = strings.Trim(key, "/")
	if key == "" {
		return "", ErrEmptyKey
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(data), opts...); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

func (s *OSSStore) Delete(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(strings.Trim(key, "/"), oss.WithContext(ctx))
}

func (s *OSSStore) PublicURL(key string) string {
	if s.PublicBase != "" {
		return s.PublicBase + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}
