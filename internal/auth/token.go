// Package auth verifies and issues the bearer tokens that identify callers.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/OlivierMantz/CommentAPI/internal/domain"
)

var (
	ErrMissingToken   = errors.New("missing bearer token")
	ErrInvalidToken   = errors.New("invalid token")
	ErrMissingSubject = errors.New("token has no subject")
)

type Options struct {
	Secret     []byte
	Issuer     string
	Audience   string
	RolesClaim string
}

// TokenVerifier turns a signed token into a verified domain.Caller.
type TokenVerifier struct {
	opts   Options
	parser *jwt.Parser
}

func NewTokenVerifier(opts Options) *TokenVerifier {
	if opts.RolesClaim == "" {
		opts.RolesClaim = "roles"
	}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{
			jwt.SigningMethodHS256.Alg(),
			jwt.SigningMethodHS384.Alg(),
			jwt.SigningMethodHS512.Alg(),
		}),
		jwt.WithExpirationRequired(),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}
	return &TokenVerifier{opts: opts, parser: jwt.NewParser(parserOpts...)}
}

// FromHeader verifies the value of an Authorization header.
func (v *TokenVerifier) FromHeader(header string) (domain.Caller, error) {
	token, ok := strings.CutPrefix(strings.TrimSpace(header), "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return domain.Caller{}, ErrMissingToken
	}
	return v.Verify(strings.TrimSpace(token))
}

func (v *TokenVerifier) Verify(raw string) (domain.Caller, error) {
	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.opts.Secret, nil
	})
	if err != nil {
		return domain.Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Caller{}, ErrMissingSubject
	}

	return domain.Caller{ID: sub, Roles: rolesFromClaim(claims[v.opts.RolesClaim])}, nil
}

// rolesFromClaim accepts a single role string or a list of them.
// Unknown role names are dropped.
func rolesFromClaim(raw interface{}) domain.RoleSet {
	var names []string
	switch val := raw.(type) {
	case string:
		names = strings.Split(val, ",")
	case []interface{}:
		for _, r := range val {
			if s, ok := r.(string); ok {
				names = append(names, s)
			}
		}
	case []string:
		names = val
	}

	roles := domain.NewRoleSet()
	for _, n := range names {
		if r, ok := domain.ParseRole(n); ok {
			roles[r] = struct{}{}
		}
	}
	return roles
}

// TokenIssuer mints tokens the verifier accepts. Used by tests and cmd/token.
type TokenIssuer struct {
	opts Options
	ttl  time.Duration
	now  func() time.Time
}

func NewTokenIssuer(opts Options, ttl time.Duration) *TokenIssuer {
	if opts.RolesClaim == "" {
		opts.RolesClaim = "roles"
	}
	return &TokenIssuer{opts: opts, ttl: ttl, now: time.Now}
}

func (i *TokenIssuer) Issue(subject string, roles ...domain.Role) (string, error) {
	now := i.now()
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}

	claims := jwt.MapClaims{
		"sub":             subject,
		"iat":             now.Unix(),
		"exp":             now.Add(i.ttl).Unix(),
		i.opts.RolesClaim: names,
	}
	if i.opts.Issuer != "" {
		claims["iss"] = i.opts.Issuer
	}
	if i.opts.Audience != "" {
		claims["aud"] = i.opts.Audience
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.opts.Secret)
}
