package identity

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campushq/studentadmin/internal/pkg/apperrors"
	"github.com/campushq/studentadmin/internal/pkg/logger"
)

// Config describes the external identity provider whose bearer tokens this
// service accepts.
type Config struct {
	// Issuer is the expected iss claim.
	Issuer string
	// Audience is the expected aud claim; empty disables the audience check.
	Audience string
	// JWKSURL is the endpoint publishing the provider's signing keys.
	JWKSURL string
}

// Claims are the token claims this service consumes.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Provider verifies bearer ID tokens against the identity provider's
// published JWKS. Construct one instance at process start and inject it;
// there is no package-level state. Verification results are never cached;
// every call re-verifies the token. Signing keys are fetched on first use
// and refreshed when a token references an unknown key id.
type Provider struct {
	cfg    Config
	client *http.Client

	mu   sync.RWMutex
	keys map[string]*rsa.PublicKey
}

// NewProvider creates a Provider. A nil client falls back to
// http.DefaultClient.
func NewProvider(cfg Config, client *http.Client) *Provider {
	if client == nil {
		client = http.DefaultClient
	}
	return &Provider{
		cfg:    cfg,
		client: client,
		keys:   map[string]*rsa.PublicKey{},
	}
}

// Verify checks the token's signature, expiry, issuer and audience, and
// returns the subject identifier. Any failure, including provider
// unavailability, surfaces as apperrors.ErrTokenInvalid: the caller is
// simply unauthenticated.
func (p *Provider) Verify(ctx context.Context, token string) (string, error) {
	claims, err := p.verify(ctx, token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Email runs the same verification path and returns the verified email claim.
func (p *Provider) Email(ctx context.Context, token string) (string, error) {
	claims, err := p.verify(ctx, token)
	if err != nil {
		return "", err
	}
	return claims.Email, nil
}

func (p *Provider) verify(ctx context.Context, tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(p.cfg.Issuer),
	}
	if p.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(p.cfg.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no key id")
		}
		return p.signingKey(ctx, kid)
	}, opts...)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, fmt.Sprintf("invalid identity token: %v", err))
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "invalid identity token: bad claims")
	}
	if claims.Subject == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "invalid identity token: missing subject")
	}

	return claims, nil
}

// signingKey returns the RSA key for kid, refreshing the key set when the
// kid is unknown (the provider may have rotated keys).
func (p *Provider) signingKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	p.mu.RLock()
	key, ok := p.keys[kid]
	p.mu.RUnlock()
	if ok {
		return key, nil
	}

	if err := p.refreshKeys(ctx); err != nil {
		return nil, err
	}

	p.mu.RLock()
	key, ok = p.keys[kid]
	p.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return key, nil
}

// refreshKeys fetches the JWKS document and replaces the key cache.
func (p *Provider) refreshKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.JWKSURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build JWKS request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("JWKS endpoint returned status %d: %s", resp.StatusCode, body)
	}

	var set JWKSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return fmt.Errorf("failed to decode JWKS document: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, jwk := range set.Keys {
		if jwk.Use != "" && jwk.Use != "sig" {
			continue
		}
		key, err := jwk.PublicKey()
		if err != nil {
			logger.Warn().Err(err).Str("kid", jwk.Kid).Msg("Skipping unusable JWKS key")
			continue
		}
		keys[jwk.Kid] = key
	}

	p.mu.Lock()
	p.keys = keys
	p.mu.Unlock()

	return nil
}
