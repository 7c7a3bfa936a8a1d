package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/imrishuroy/go-storefront-admin/internal/apperr"
)

// DefaultTokenTTL is the access token lifetime.
const DefaultTokenTTL = 8 * time.Hour

// TokenType is returned alongside access tokens.
const TokenType = "bearer"

var (
	// ErrInvalidToken covers bad signatures, malformed tokens and foreign principals.
	ErrInvalidToken = apperr.Unauthorized("Invalid or expired token")
)

// TokenConfig holds the signing configuration.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// Token is an issued access token.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"-"`
}

// TokenService issues and validates HS256 tokens for the admin principal.
type TokenService struct {
	config  TokenConfig
	creds   *CredentialStore
	nowFunc func() time.Time
}

// NewTokenService returns a TokenService bound to creds.
func NewTokenService(config TokenConfig, creds *CredentialStore) (*TokenService, error) {
	if config.Secret == "" {
		return nil, fmt.Errorf("token secret is empty")
	}
	if config.TTL <= 0 {
		config.TTL = DefaultTokenTTL
	}
	return &TokenService{
		config:  config,
		creds:   creds,
		nowFunc: time.Now,
	}, nil
}

// Issue signs a token whose subject is the admin email.
func (s *TokenService) Issue(admin *Admin) (*Token, error) {
	now := s.nowFunc()
	expiresAt := now.Add(s.config.TTL)
	claims := jwt.RegisteredClaims{
		Issuer:    s.config.Issuer,
		Subject:   admin.Email,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Token{AccessToken: signed, TokenType: TokenType, ExpiresAt: expiresAt}, nil
}

// Validate parses a token and returns the admin it identifies. Every failure
// is reported as ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (*Admin, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.nowFunc),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.Subject != s.creds.Email() {
		return nil, ErrInvalidToken
	}
	return s.creds.Admin(), nil
}
