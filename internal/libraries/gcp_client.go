package libraries

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type Clients struct {
	GCS       *storage.Client
	Bucket    string
	ProjectID string
}

var clients *Clients

func GetClients() *Clients {
	return clients
}

func NewClients(ctx context.Context) (*Clients, error) {
	// read base64 encoded JSON
	encoded := os.Getenv("GCP_SERVICE_ACCOUNT_CREDENTIALS")
	if encoded == "" {
		return nil, fmt.Errorf("GCP_SERVICE_ACCOUNT_CREDENTIALS not set")
	}

	// decode JSON
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode service account json: %w", err)
	}

	credOpt := option.WithCredentialsJSON(decoded)

	gcsClient, err := storage.NewClient(ctx, credOpt)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}

	clients = &Clients{
		GCS:       gcsClient,
		Bucket:    os.Getenv("GCS_DRAWINGS_BUCKET"),
		ProjectID: os.Getenv("GOOGLE_CLOUD_PROJECT_ID"),
	}

	return clients, nil
}

// UploadObject mirrors an uploaded drawing into the configured GCS bucket.
func (c *Clients) UploadObject(ctx context.Context, name, contentType string, r io.Reader) error {
	if c.Bucket == "" {
		return fmt.Errorf("GCS_DRAWINGS_BUCKET not set")
	}
	w := c.GCS.Bucket(c.Bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("gcs upload: %w", err)
	}
	return w.Close()
}

func (c *Clients) Close() {
	c.GCS.Close()
}
