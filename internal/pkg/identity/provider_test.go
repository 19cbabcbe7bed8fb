package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/studentadmin/internal/pkg/apperrors"
)

const testIssuer = "https://id.example.com"

func newTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func newJWKSServer(t *testing.T, kid string, pub *rsa.PublicKey) *httptest.Server {
	t.Helper()
	set := JWKSet{Keys: []JWK{{
		Kty: "RSA",
		Use: "sig",
		Alg: "RS256",
		Kid: kid,
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}}}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(set)
	}))
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func validClaims(subject string) Claims {
	now := time.Now()
	return Claims{
		Email: subject + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    testIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestVerifyReturnsSubject(t *testing.T) {
	key := newTestKey(t)
	server := newJWKSServer(t, "key-1", &key.PublicKey)
	defer server.Close()

	provider := NewProvider(Config{Issuer: testIssuer, JWKSURL: server.URL}, nil)
	token := signToken(t, key, "key-1", validClaims("uid-1"))

	subject, err := provider.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", subject)

	email, err := provider.Email(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1@example.com", email)
}

func TestVerifyExpiredToken(t *testing.T) {
	key := newTestKey(t)
	server := newJWKSServer(t, "key-1", &key.PublicKey)
	defer server.Close()

	provider := NewProvider(Config{Issuer: testIssuer, JWKSURL: server.URL}, nil)

	claims := validClaims("uid-1")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	token := signToken(t, key, "key-1", claims)

	_, err := provider.Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestVerifyWrongIssuer(t *testing.T) {
	key := newTestKey(t)
	server := newJWKSServer(t, "key-1", &key.PublicKey)
	defer server.Close()

	provider := NewProvider(Config{Issuer: testIssuer, JWKSURL: server.URL}, nil)

	claims := validClaims("uid-1")
	claims.Issuer = "https://attacker.example.com"
	token := signToken(t, key, "key-1", claims)

	_, err := provider.Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestVerifyWrongAudience(t *testing.T) {
	key := newTestKey(t)
	server := newJWKSServer(t, "key-1", &key.PublicKey)
	defer server.Close()

	provider := NewProvider(Config{Issuer: testIssuer, Audience: "studentadmin", JWKSURL: server.URL}, nil)

	claims := validClaims("uid-1")
	claims.Audience = jwt.ClaimStrings{"some-other-app"}
	token := signToken(t, key, "key-1", claims)

	_, err := provider.Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestVerifyBadSignature(t *testing.T) {
	key := newTestKey(t)
	otherKey := newTestKey(t)
	server := newJWKSServer(t, "key-1", &key.PublicKey)
	defer server.Close()

	provider := NewProvider(Config{Issuer: testIssuer, JWKSURL: server.URL}, nil)

	// Signed by a key the provider never published, under a known kid.
	token := signToken(t, otherKey, "key-1", validClaims("uid-1"))

	_, err := provider.Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestVerifyMalformedToken(t *testing.T) {
	key := newTestKey(t)
	server := newJWKSServer(t, "key-1", &key.PublicKey)
	defer server.Close()

	provider := NewProvider(Config{Issuer: testIssuer, JWKSURL: server.URL}, nil)

	_, err := provider.Verify(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestVerifyUnknownKeyID(t *testing.T) {
	key := newTestKey(t)
	server := newJWKSServer(t, "key-1", &key.PublicKey)
	defer server.Close()

	provider := NewProvider(Config{Issuer: testIssuer, JWKSURL: server.URL}, nil)
	token := signToken(t, key, "key-2", validClaims("uid-1"))

	_, err := provider.Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestVerifyProviderUnavailable(t *testing.T) {
	key := newTestKey(t)
	server := newJWKSServer(t, "key-1", &key.PublicKey)
	server.Close() // provider is down before the first key fetch

	provider := NewProvider(Config{Issuer: testIssuer, JWKSURL: server.URL}, nil)
	token := signToken(t, key, "key-1", validClaims("uid-1"))

	_, err := provider.Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
