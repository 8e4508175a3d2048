package infra

import (
	"context"
	"encoding/base64"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseClients bundles the Admin SDK handles used by the service.
type FirebaseClients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// NewFirebase initializes the Firebase Admin app and returns its auth and
// Firestore clients. Credentials come from a service-account file, a base64
// encoded service-account JSON blob, or Application Default Credentials, in
// that order of preference.
func NewFirebase(ctx context.Context, cfg *Config) (*FirebaseClients, error) {
	var opts []option.ClientOption
	switch {
	case cfg.FirebaseCredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	case cfg.FirebaseCredentialsJSONBase64 != "":
		raw, err := base64.StdEncoding.DecodeString(cfg.FirebaseCredentialsJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("decode FIREBASE_SERVICE_ACCOUNT_JSON_BASE64: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(raw))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}

	clients := &FirebaseClients{Auth: authClient}
	if cfg.DocstoreDriver == DocstoreDriverFirestore {
		fs, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("firestore client: %w", err)
		}
		clients.Firestore = fs
	}
	return clients, nil
}

// VerifyIDToken validates a Firebase ID token and returns its subject uid.
func (c *FirebaseClients) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	tok, err := c.Auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	return tok.UID, nil
}

// Close releases the underlying clients.
func (c *FirebaseClients) Close() {
	if c.Firestore != nil {
		_ = c.Firestore.Close()
	}
}
