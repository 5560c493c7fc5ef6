package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/UriNeri/pyraseq/internal/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Options configures the client connection.
type Options struct {
	Endpoint     string // host[:port], no scheme
	Region       string
	Insecure     bool // plain HTTP
	AccessKey    string
	SecretKey    string
	SessionToken string
}

// Store implements blobstore.Store for s3://bucket/key names.
type Store struct {
	client *minio.Client
}

// New dials nothing; it only builds the client.
func New(o Options) (*Store, error) {
	if o.Endpoint == "" {
		return nil, errors.New("object store endpoint is empty")
	}
	client, err := minio.New(o.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(o.AccessKey, o.SecretKey, o.SessionToken),
		Secure: !o.Insecure,
		Region: o.Region,
	})
	if err != nil {
		return nil, err
	}
	return NewStore(client), nil
}

// NewStore wraps an existing client.
func NewStore(client *minio.Client) *Store {
	return &Store{client: client}
}

func split(name string) (string, string, error) {
	bucket, key, ok := blobstore.SplitObjectURL(name)
	if !ok {
		return "", "", fmt.Errorf("invalid object URL %q (want s3://bucket/key)", name)
	}
	return bucket, key, nil
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound" || code == "NoSuchBucket"
}

// Open streams an object. Existence is checked up front so a missing object
// fails here rather than on first Read.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	bucket, key, err := split(name)
	if err != nil {
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if isNotFound(err) {
			return nil, fmt.Errorf("%s: %w", name, blobstore.ErrNotFound)
		}
		return nil, err
	}
	return obj, nil
}

// Create streams writes into a background PutObject. Close waits for the
// upload to finish and returns its error.
func (s *Store) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	bucket, key, err := split(name)
	if err != nil {
		return nil, err
	}
	pr, pw := io.Pipe()
	blob := &writableBlob{
		pw:   pw,
		done: make(chan error, 1),
	}

	go func() {
		_, err := s.client.PutObject(ctx, bucket, key, pr, -1, minio.PutObjectOptions{})
		_ = pr.CloseWithError(err)
		blob.done <- err
	}()

	return blob, nil
}

type writableBlob struct {
	pw       *io.PipeWriter
	done     chan error
	finished atomic.Bool
}

func (b *writableBlob) Write(p []byte) (int, error) {
	return b.pw.Write(p)
}

func (b *writableBlob) Close() error {
	if !b.finished.CompareAndSwap(false, true) {
		return errors.New("already closed")
	}
	if err := b.pw.Close(); err != nil {
		return err
	}
	return <-b.done
}
