package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/store"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"
)

// ErrInvalidKey is returned for keys that are empty or look like paths.
var ErrInvalidKey = errors.New("invalid storage key")

// Store keeps blobs in a bucket, one object per key.
type Store struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// NewStore wraps an open bucket. Close releases it.
func NewStore(bucket *blob.Bucket, logger *slog.Logger) (*Store, error) {
	if bucket == nil {
		return nil, errors.New("bucket cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		bucket: bucket,
		logger: logger.With(slog.String("component", "blob_store")),
	}, nil
}

// OpenDir opens a fileblob bucket rooted at dir, creating the directory
// if needed. Writes go through a temp file next to the target and are
// renamed into place on success.
func OpenDir(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("upload directory cannot be empty")
	}
	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{
		CreateDir: true,
		NoTempDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open upload bucket: %w", err)
	}
	return NewStore(bucket, logger)
}

// Put copies r into the blob named key. A failed copy aborts the write,
// leaving no partial blob behind.
func (s *Store) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	if err := validateKey(key); err != nil {
		return 0, err
	}

	// canceling the writer's context before Close discards the write
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := s.bucket.NewWriter(wctx, key, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create blob writer: %w", err)
	}
	n, err := io.Copy(w, r)
	if err != nil {
		cancel()
		_ = w.Close()
		return 0, fmt.Errorf("failed to write blob: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("failed to commit blob: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("blob stored",
		slog.String("key", key),
		slog.Int64("size", n))
	return n, nil
}

// Open returns store.ErrFileNotFound when the key has no blob.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	rd, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, store.ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return rd, nil
}

// Delete removes the blob. Missing blobs are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := s.bucket.Delete(ctx, key); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// Close releases the bucket.
func (s *Store) Close() error {
	return s.bucket.Close()
}

func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}
