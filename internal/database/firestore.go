package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// FirestoreOptions locates the service account used to reach Firestore.
type FirestoreOptions struct {
	// CredentialsJSON is the raw service-account JSON, usually from an env var.
	CredentialsJSON string
	// CredentialsFile is read when CredentialsJSON is empty.
	CredentialsFile string
	// ProjectID overrides the project_id found in the credentials.
	ProjectID string
}

// LoadCredentials returns the service-account JSON, preferring the inline
// value and falling back to the local file.
func (o FirestoreOptions) LoadCredentials() ([]byte, error) {
	if o.CredentialsJSON != "" {
		return []byte(o.CredentialsJSON), nil
	}
	if o.CredentialsFile == "" {
		return nil, errors.New("no firestore credentials configured")
	}
	data, err := os.ReadFile(o.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read firestore credentials: %w", err)
	}
	return data, nil
}

// ResolveProjectID returns the configured project or the one embedded in creds.
func (o FirestoreOptions) ResolveProjectID(creds []byte) (string, error) {
	if o.ProjectID != "" {
		return o.ProjectID, nil
	}
	var sa struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(creds, &sa); err != nil {
		return "", fmt.Errorf("invalid service account JSON: %w", err)
	}
	if sa.ProjectID == "" {
		return "", errors.New("service account JSON has no project_id")
	}
	return sa.ProjectID, nil
}

// NewFirestore creates a Firestore client. When FIRESTORE_EMULATOR_HOST is
// set the client library talks to the emulator and credentials are skipped.
func NewFirestore(ctx context.Context, opts FirestoreOptions) (*firestore.Client, error) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") != "" {
		project := opts.ProjectID
		if project == "" {
			project = "edu2job-local"
		}
		return firestore.NewClient(ctx, project)
	}

	creds, err := opts.LoadCredentials()
	if err != nil {
		return nil, err
	}
	projectID, err := opts.ResolveProjectID(creds)
	if err != nil {
		return nil, err
	}
	return firestore.NewClient(ctx, projectID, option.WithCredentialsJSON(creds))
}
