package appcore

import (
	"fmt"

	"github.com/UriNeri/pyraseq/internal/blobstore"
	"github.com/UriNeri/pyraseq/internal/blobstore/minio"
	"github.com/UriNeri/pyraseq/internal/config"
	perrors "github.com/UriNeri/pyraseq/internal/errors"
)

// NewStore returns a Router that serves local paths and, when an endpoint
// is configured, s3:// URLs through MinIO.
func NewStore(sc config.StorageConfig) (*blobstore.Router, error) {
	if sc.Endpoint == "" {
		return blobstore.NewRouter(nil), nil
	}
	objects, err := minio.New(minio.Options{
		Endpoint:     sc.Endpoint,
		Region:       sc.Region,
		Insecure:     sc.Insecure,
		AccessKey:    sc.AccessKey,
		SecretKey:    sc.SecretKey,
		SessionToken: sc.SessionToken,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: object store: %w", perrors.ErrConfig, err)
	}
	return blobstore.NewRouter(objects), nil
}
