package blob

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"fdp_backend/internals/configs"
)

var ErrEmptyKey = errors.New("empty object key")

// Store persists rendered files and uploaded images under a slash-separated key
// and hands back the URL clients should use.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// NewStore picks OSS when credentials are present and falls back to the local upload dir.
func NewStore(cfg configs.Storage) Store {
	if cfg.OSSEnabled() {
		s, err := NewOSSStore(cfg)
		if err == nil {
			return s
		}
		log.Printf("[BLOB] OSS unavailable, using local dir %q: %v", cfg.UploadDir, err)
	}
	return NewLocalStore(cfg.UploadDir, cfg.PublicPrefix)
}

/* =======================================================================
   Local disk (served back by the static /uploads route)
======================================================================= */

type LocalStore struct {
	Dir    string
	Prefix string
}

func NewLocalStore(dir, publicPrefix string) *LocalStore {
	return &LocalStore{Dir: dir, Prefix: "/" + strings.Trim(publicPrefix, "/")}
}

func (s *LocalStore) path(key string) (string, error) {
	key = strings.Trim(key, "/")
	if key == "" {
		return "", ErrEmptyKey
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("key escapes upload dir: %s", key)
	}
	return filepath.Join(s.Dir, clean), nil
}

func (s *LocalStore) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	return s.Prefix + "/" + strings.Trim(key, "/"), nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// KeyFromURL recovers the object key from a URL returned by Put. Local URLs
// carry the public prefix; OSS URLs carry the key as their path.
func KeyFromURL(raw, publicPrefix string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	p := strings.TrimPrefix(u.Path, "/"+strings.Trim(publicPrefix, "/"))
	p = strings.Trim(p, "/")
	return p, p != ""
}
