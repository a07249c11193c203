package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path"
	"strings"

	"careernest/internal/apperr"
	"careernest/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Uploader is the document/image upload collaborator: hand it a file,
// receive a URL. A failed upload is fatal to the enclosing operation.
type Uploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
	Remove(ctx context.Context, fileURL string) error
}

type MinioUploader struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

func NewMinioUploader(cfg *config.Config) (*MinioUploader, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
		Region: cfg.MinIORegion,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing MinIO client: %w", err)
	}

	exists, err := client.BucketExists(context.Background(), cfg.MinIOBucket)
	if err != nil {
		return nil, fmt.Errorf("error checking bucket %s: %w", cfg.MinIOBucket, err)
	}
	if !exists {
		err = client.MakeBucket(context.Background(), cfg.MinIOBucket, minio.MakeBucketOptions{Region: cfg.MinIORegion})
		if err != nil {
			return nil, fmt.Errorf("error creating bucket %s: %w", cfg.MinIOBucket, err)
		}
		log.Printf("Created bucket: %s", cfg.MinIOBucket)
	}

	return &MinioUploader{
		client:     client,
		bucket:     cfg.MinIOBucket,
		publicBase: strings.TrimRight(cfg.PublicFileBase, "/"),
	}, nil
}

func (u *MinioUploader) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", apperr.External("could not read uploaded file", err)
	}
	defer src.Close()

	objectName := folder + "/" + bson.NewObjectID().Hex() + path.Ext(file.Filename)
	contentType := file.Header.Get("Content-Type")

	_, err = u.client.PutObject(ctx, u.bucket, objectName, src, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", apperr.External("document upload failed", err)
	}

	return u.publicBase + "/" + objectName, nil
}

// Remove deletes a previously uploaded object given its public URL. Used by
// the shadow-registration cleanup and profile replacement paths; a failure
// here is logged by callers, never fatal.
func (u *MinioUploader) Remove(ctx context.Context, fileURL string) error {
	objectName := strings.TrimPrefix(fileURL, u.publicBase+"/")
	if objectName == "" || objectName == fileURL {
		return fmt.Errorf("unrecognized file url: %s", fileURL)
	}
	if err := u.client.RemoveObject(ctx, u.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("error removing object %s: %w", objectName, err)
	}
	return nil
}

// CopyReader uploads raw bytes, used when re-staging a snapshot rather than
// a browser upload.
func (u *MinioUploader) CopyReader(ctx context.Context, reader io.Reader, size int64, objectName, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, u.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", apperr.External("document upload failed", err)
	}
	return u.publicBase + "/" + objectName, nil
}
