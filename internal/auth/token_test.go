package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/finance-console/internal/domain/approval"
	"github.com/garyjia/finance-console/internal/domain/entity"
)

func signToken(t *testing.T, secret string, sub string, roles []string, exp time.Time) string {
	t.Helper()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Roles: roles,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestDecoder_Verified(t *testing.T) {
	decoder := NewDecoder("topsecret")
	future := time.Now().Add(time.Hour)

	claims, err := decoder.Decode(signToken(t, "topsecret", "u1", []string{"Senior"}, future))
	require.NoError(t, err)
	assert.Equal(t, entity.Identity{SubjectID: "u1", Roles: []string{"Senior"}}, claims.Identity())

	_, err = decoder.Decode(signToken(t, "othersecret", "u1", nil, future))
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = decoder.Decode(signToken(t, "topsecret", "u1", nil, time.Now().Add(-time.Minute)))
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestDecoder_Unverified(t *testing.T) {
	decoder := NewDecoder("")
	assert.False(t, decoder.Verifies())

	claims, err := decoder.Decode(signToken(t, "whatever", "u2", []string{"junior"}, time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "u2", claims.Subject)
	assert.Equal(t, []string{"junior"}, claims.Roles)

	_, err = decoder.Decode(signToken(t, "whatever", "u2", nil, time.Now().Add(-time.Minute)))
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = decoder.Decode("not-a-jwt")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestDecoder_RequiresSubject(t *testing.T) {
	decoder := NewDecoder("")
	_, err := decoder.Decode(signToken(t, "k", "", []string{"admin"}, time.Now().Add(time.Hour)))
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = decoder.Decode("")
	assert.True(t, errors.Is(err, ErrMissingToken))
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "bearer  abc ", want: "abc"},
		{header: "", wantErr: ErrMissingToken},
		{header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidToken},
		{header: "Bearer ", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasRole(t *testing.T) {
	identity := entity.Identity{SubjectID: "u1", Roles: []string{" Admin ", "senior"}}
	assert.True(t, HasRole(identity, "admin"))
	assert.True(t, HasRole(identity, "SENIOR"))
	assert.False(t, HasRole(identity, "executive"))
	assert.False(t, HasRole(identity, ""))
	assert.False(t, HasRole(identity, "   "))
	assert.False(t, HasRole(entity.Identity{SubjectID: "u1"}, "admin"))

	// Agrees with the role matching used by the self-action restriction
	for _, role := range []string{"ADMIN", " senior", "Executive", "adm in"} {
		assert.Equal(t, approval.RolesOverlap(identity.Roles, []string{role}), HasRole(identity, role), role)
	}
}
