// Package docsource fetches statement documents from Google Cloud Storage,
// for callers that reference an already-uploaded file by gs:// URI instead
// of sending the bytes inline.
package docsource

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

// IsGCSURI reports whether the string looks like a gs://bucket/object URI.
func IsGCSURI(uri string) bool {
	return strings.HasPrefix(uri, "gs://")
}

// ParseGCSURI splits "gs://bucket/path/to/object" into bucket and object.
func ParseGCSURI(uri string) (bucket, object string, err error) {
	if !IsGCSURI(uri) {
		return "", "", fmt.Errorf("invalid GCS URI: %s", uri)
	}

	trimmed := strings.TrimPrefix(uri, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GCS URI (no object path): %s", uri)
	}
	return parts[0], parts[1], nil
}

// FetchGCS downloads the object bytes for the given GCS URI and returns them
// with the stored content type (empty when unset). It assumes Application
// Default Credentials are configured.
func FetchGCS(ctx context.Context, uri string) ([]byte, string, error) {
	bucket, object, err := ParseGCSURI(uri)
	if err != nil {
		return nil, "", err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: creating storage client: %w", uri, err)
	}
	defer client.Close()

	rc, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: opening object: %w", uri, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: reading bytes: %w", uri, err)
	}

	return data, rc.Attrs.ContentType, nil
}
