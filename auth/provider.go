package auth

import (
	"context"
	"errors"
	"log"
	"os"
	"sync/atomic"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

var errNotReady = errors.New("identity provider still initializing")

// Provider wraps the Firebase Admin client. It is created on startup and
// passed down explicitly instead of living in package-level state, so the
// guard middleware can ask whether identity resolution is ready yet.
type Provider struct {
	client    *fbauth.Client
	projectID string
	ready     atomic.Bool
	failed    atomic.Bool
}

func NewProvider() *Provider {
	return &Provider{}
}

// Init connects to Firebase. It is intended to run in a goroutine; until it
// finishes, Ready() reports false and guarded routes answer with a retry
// status rather than a forbidden one.
func (p *Provider) Init(ctx context.Context) {
	credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if credsJSON == "" {
		log.Println("⚠️ FIREBASE_CREDENTIALS_JSON not set; federated sign-in disabled")
		p.failed.Store(true)
		return
	}

	p.projectID = os.Getenv("FIREBASE_PROJECT_ID")
	if p.projectID == "" {
		log.Println("⚠️ FIREBASE_PROJECT_ID not set; federated sign-in disabled")
		p.failed.Store(true)
		return
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	config := &firebase.Config{ProjectID: p.projectID}

	app, err := firebase.NewApp(ctx, config, opt)
	if err != nil {
		log.Printf("❌ Error initializing Firebase app: %v", err)
		p.failed.Store(true)
		return
	}

	client, err := app.Auth(ctx)
	if err != nil {
		log.Printf("❌ Error getting Firebase Auth client: %v", err)
		p.failed.Store(true)
		return
	}

	p.client = client
	p.ready.Store(true)
	log.Println("✅ Firebase identity provider ready")
}

// Ready reports whether identity resolution can be performed. A failed init
// still counts as resolved: the guard must decide, not spin forever.
func (p *Provider) Ready() bool {
	return p.ready.Load() || p.failed.Load()
}

// VerifyIDToken checks a federated ID token, including revocation, and
// validates the audience against the configured project.
func (p *Provider) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	if !p.ready.Load() {
		return nil, errNotReady
	}

	token, err := p.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if token.Audience != p.projectID {
		return nil, errors.New("invalid token audience")
	}
	return token, nil
}
