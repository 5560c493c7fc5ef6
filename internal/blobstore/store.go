package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrNoObjectStore is returned for s3:// names when no object store is configured.
var ErrNoObjectStore = errors.New("no object store configured for s3:// paths")

// Scheme is the URL prefix routed to the object store.
const Scheme = "s3://"

// Store opens named streams for reading and creates them for writing.
type Store interface {
	// Open opens name for sequential reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Create creates or truncates name. Data is durable once Close returns nil.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}

// IsObjectURL reports whether name uses the s3:// scheme.
func IsObjectURL(name string) bool {
	return strings.HasPrefix(name, Scheme)
}

// SplitObjectURL splits "s3://bucket/key" into bucket and key.
func SplitObjectURL(name string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(name, Scheme)
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// Router sends s3:// names to Objects and everything else to Local.
type Router struct {
	Local   Store
	Objects Store // may be nil
}

// NewRouter returns a Router over a LocalStore and an optional object store.
func NewRouter(objects Store) *Router {
	return &Router{Local: NewLocalStore(), Objects: objects}
}

func (r *Router) pick(name string) (Store, error) {
	if IsObjectURL(name) {
		if r.Objects == nil {
			return nil, ErrNoObjectStore
		}
		return r.Objects, nil
	}
	if r.Local == nil {
		return NewLocalStore(), nil
	}
	return r.Local, nil
}

// Open implements Store.
func (r *Router) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	s, err := r.pick(name)
	if err != nil {
		return nil, err
	}
	return s.Open(ctx, name)
}

// Create implements Store.
func (r *Router) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	s, err := r.pick(name)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, name)
}
