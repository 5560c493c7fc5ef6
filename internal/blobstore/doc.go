// Package blobstore resolves input and output names to byte streams.
//
// Local paths, "-" (stdin/stdout) and "/dev/stdout" are served by LocalStore.
// Names with the s3:// scheme are served by an object store (see the minio
// subpackage). Router picks between them.
package blobstore
