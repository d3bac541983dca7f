package identity

import (
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/oauth2"
)

// DefaultUserInfoURL is Google's OAuth2 userinfo endpoint.
const DefaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleVerifier validates an OAuth2 access token by presenting it to
// Google's userinfo endpoint. A token Google rejects is
// ErrUnauthenticated; a token it accepts yields the account's profile
// as the claim.
type GoogleVerifier struct {
	// UserInfoURL overrides the endpoint; tests point it at a local server.
	UserInfoURL string
}

// NewGoogleVerifier returns a verifier against the real Google endpoint.
func NewGoogleVerifier() *GoogleVerifier {
	return &GoogleVerifier{UserInfoURL: DefaultUserInfoURL}
}

// googleUserInfo is the subset of the userinfo response we consume.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Verify fetches the userinfo document using the bearer token.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*Claim, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	url := v.UserInfoURL
	if url == "" {
		url = DefaultUserInfoURL
	}
	resp, err := client.Get(url)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnauthenticated
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, ErrUnauthenticated
	}
	if info.ID == "" {
		return nil, ErrUnauthenticated
	}

	c := &Claim{
		ExternalID:    info.ID,
		Email:         info.Email,
		EmailVerified: info.EmailVerified,
		FirstName:     info.GivenName,
		LastName:      info.FamilyName,
		AvatarURL:     info.Picture,
	}
	if c.FirstName == "" && info.Name != "" {
		c.FirstName, c.LastName = SplitDisplayName(info.Name)
	}
	return c, nil
}
