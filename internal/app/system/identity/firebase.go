package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseVerifier validates Firebase ID tokens with the Admin SDK.
// This is the authority the mobile clients authenticate against.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier initializes the Admin SDK. credentialsFile may be
// empty, in which case application-default credentials are used.
func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase init: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify checks the ID token's signature and expiry against Firebase and
// maps the decoded token to a Claim.
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Claim, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return claimFromToken(decoded), nil
}

func claimFromToken(tok *fbauth.Token) *Claim {
	c := &Claim{ExternalID: tok.UID}

	if email, ok := tok.Claims["email"].(string); ok {
		c.Email = email
	}
	if verified, ok := tok.Claims["email_verified"].(bool); ok {
		c.EmailVerified = verified
	}
	if name, ok := tok.Claims["name"].(string); ok {
		c.FirstName, c.LastName = SplitDisplayName(name)
	}
	if picture, ok := tok.Claims["picture"].(string); ok {
		c.AvatarURL = picture
	}
	return c
}
