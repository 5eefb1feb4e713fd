package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/revobooking/revo-ui/internal/domain/auth"
)

func TestSessionStateFromContext(t *testing.T) {
	// No middleware ran => undetermined
	state := SessionStateFromContext(context.Background())
	assert.True(t, state.Loading)
	assert.Empty(t, SessionIDFromContext(context.Background()))

	identity := &domainauth.Identity{ID: "u1", Name: "Budi", Role: domainauth.RoleUser}
	ctx := withRequestSession(context.Background(), "sid-1", domainauth.Resolved(identity))
	state = SessionStateFromContext(ctx)
	assert.False(t, state.Loading)
	assert.True(t, state.IsAuthenticated())
	assert.Equal(t, "sid-1", SessionIDFromContext(ctx))
	assert.Equal(t, identity, CurrentIdentity(ctx))
}

func TestIsGuestUser(t *testing.T) {
	// No session => guest
	assert.True(t, IsGuestUser(context.Background()))

	// Resolved without identity => guest
	anon := withRequestSession(context.Background(), "", domainauth.Resolved(nil))
	assert.True(t, IsGuestUser(anon))

	user := withRequestSession(context.Background(), "u", domainauth.Resolved(&domainauth.Identity{Role: domainauth.RoleUser}))
	admin := withRequestSession(context.Background(), "a", domainauth.Resolved(&domainauth.Identity{Role: domainauth.RoleAdmin}))
	assert.False(t, IsGuestUser(user))
	assert.False(t, IsGuestUser(admin))
}
