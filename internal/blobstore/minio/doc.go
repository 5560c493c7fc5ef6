// Package minio serves s3:// names from MinIO or any S3-compatible endpoint.
package minio
