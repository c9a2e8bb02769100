package middleware

import (
	"crypto/rsa"
	"crypto/subtle"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-raffle/internal/api/shared/errors"
	"github.com/feral-file/ff-raffle/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	AUTH_TYPE_KEY    contextKey = "auth_type"
	AUTH_SUBJECT_KEY contextKey = "auth_subject"
)

const (
	AuthTypeJWT    = "jwt"
	AuthTypeAPIKey = "apikey"
)

// AuthConfig holds authentication configuration of the admin routes
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	APIKeys      []string
}

// AuthResult holds the result of authentication
type AuthResult struct {
	AuthType string
	Subject  string
}

// Authenticator validates admin credentials
type Authenticator struct {
	publicKey *rsa.PublicKey
	apiKeys   [][]byte
}

// NewAuthenticator parses the configured key material. An empty public key disables JWT authentication.
func NewAuthenticator(cfg AuthConfig) (*Authenticator, error) {
	a := &Authenticator{}

	if cfg.JWTPublicKey != "" {
		key, err := parseRSAPublicKey(cfg.JWTPublicKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		a.publicKey = key
	}

	for _, k := range cfg.APIKeys {
		if k != "" {
			a.apiKeys = append(a.apiKeys, []byte(k))
		}
	}

	return a, nil
}

// Authenticate validates an Authorization header of the form "Bearer <jwt>" or "ApiKey <key>"
func (a *Authenticator) Authenticate(authHeader string) (*AuthResult, error) {
	if authHeader == "" {
		return nil, errors.New("missing Authorization header")
	}

	scheme, credentials, ok := strings.Cut(authHeader, " ")
	if !ok || credentials == "" {
		return nil, errors.New("invalid Authorization header format")
	}

	switch strings.ToLower(scheme) {
	case "bearer":
		claims, err := a.validateJWT(credentials)
		if err != nil {
			return nil, err
		}
		return &AuthResult{AuthType: AuthTypeJWT, Subject: claims.Subject}, nil

	case "apikey":
		if err := a.validateAPIKey(credentials); err != nil {
			return nil, err
		}
		return &AuthResult{AuthType: AuthTypeAPIKey}, nil

	default:
		return nil, fmt.Errorf("unsupported authorization type: %s", scheme)
	}
}

// Auth returns a gin middleware for authentication
// It supports both JWT (Bearer token) and API Key authentication
func Auth(cfg AuthConfig) gin.HandlerFunc {
	authenticator, err := NewAuthenticator(cfg)
	if err != nil {
		logger.Error(err, zap.String("component", "auth"))
		return func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				apierrors.NewInternalError("Authentication is misconfigured"))
		}
	}

	return func(c *gin.Context) {
		result, err := authenticator.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierrors.NewUnauthorizedError("Authentication failed", err.Error()))
			return
		}

		c.Set(string(AUTH_TYPE_KEY), result.AuthType)
		if result.Subject != "" {
			c.Set(string(AUTH_SUBJECT_KEY), result.Subject)
		}

		logger.DebugCtx(c.Request.Context(), "Admin request authenticated",
			zap.String("path", c.Request.URL.Path),
			zap.String("auth_type", result.AuthType),
			zap.String("subject", result.Subject),
		)

		c.Next()
	}
}

// validateJWT validates an RS256 token; expiry and not-before are enforced by the parser
func (a *Authenticator) validateJWT(tokenString string) (*jwt.RegisteredClaims, error) {
	if a.publicKey == nil {
		return nil, errors.New("JWT public key not configured")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func (a *Authenticator) validateAPIKey(apiKey string) error {
	if len(a.apiKeys) == 0 {
		return errors.New("no API keys configured")
	}

	for _, k := range a.apiKeys {
		if subtle.ConstantTimeCompare(k, []byte(apiKey)) == 1 {
			return nil
		}
	}

	return errors.New("invalid API key")
}

// parseRSAPublicKey parses an RSA public key from PEM format (PKIX or PKCS1)
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}
