// internal/testutil/verifier.go
package testutil

import (
	"context"

	"github.com/muba123321/WATTWISE/internal/app/system/identity"
)

// StubVerifier resolves tokens from a fixed map; anything else is
// rejected with identity.ErrUnauthenticated.
type StubVerifier struct {
	Claims map[string]*identity.Claim
}

func (v *StubVerifier) Verify(ctx context.Context, token string) (*identity.Claim, error) {
	if c, ok := v.Claims[token]; ok {
		return c, nil
	}
	return nil, identity.ErrUnauthenticated
}
