package auth

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	r, ok = ParseRole("user")
	assert.True(t, ok)
	assert.Equal(t, RoleUser, r)

	_, ok = ParseRole("guest")
	assert.False(t, ok)
}

func TestIdentity_UnmarshalAcceptsNumericAndMongoIDs(t *testing.T) {
	var numeric Identity
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"name":"Sari","email":"sari@example.com","role":"user"}`), &numeric))
	assert.Equal(t, "7", numeric.ID.String())
	assert.Equal(t, RoleUser, numeric.Role)

	var mongo Identity
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"65a1","name":"Budi","role":"admin"}`), &mongo))
	assert.Equal(t, "65a1", mongo.ID.String())
	assert.True(t, mongo.IsAdmin())
}

func TestSessionState_Capabilities(t *testing.T) {
	assert.False(t, Undetermined().IsAuthenticated())
	assert.False(t, Undetermined().IsAdmin())

	anon := Resolved(nil)
	assert.False(t, anon.Loading)
	assert.False(t, anon.IsAuthenticated())

	user := Resolved(&Identity{ID: "1", Role: RoleUser})
	assert.True(t, user.IsAuthenticated())
	assert.False(t, user.IsAdmin())

	admin := Resolved(&Identity{ID: "2", Role: "ADMIN"})
	assert.True(t, admin.IsAdmin())

	var nilIdentity *Identity
	assert.False(t, nilIdentity.IsAdmin())
}

func TestSession_HasToken(t *testing.T) {
	assert.False(t, Session{}.HasToken())
	assert.True(t, Session{Token: "abc"}.HasToken())
}

func TestTokenContext(t *testing.T) {
	_, ok := TokenFromContext(context.Background())
	assert.False(t, ok)

	_, ok = TokenFromContext(ContextWithToken(context.Background(), ""))
	assert.False(t, ok, "empty tokens are treated as absent")

	token, ok := TokenFromContext(ContextWithToken(context.Background(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
}
