package middleware

import (
	"errors"
	"strings"

	"github.com/billing/backend/internal/infrastructure/auth"
	"github.com/billing/backend/internal/infrastructure/logger"
	"github.com/billing/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authentication headers and context keys
const (
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
	// OwnerHeader carries the caller identity when header identity is allowed
	OwnerHeader = "X-User-ID"

	ClaimsKey  = "jwt_claims"
	OwnerIDKey = "owner_id"
)

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

// AuthConfig holds configuration for the owner authentication middleware
type AuthConfig struct {
	Verifier TokenVerifier
	// AllowHeaderIdentity accepts X-User-ID when no bearer token is sent.
	// Never enabled in production.
	AllowHeaderIdentity bool
	SkipPaths           []string
	SkipPathPrefixes    []string
	Logger              *zap.Logger
}

// OwnerAuth resolves the caller's owner ID from a bearer token, or from
// X-User-ID when AllowHeaderIdentity is set. Requests without an identity
// get 401.
func OwnerAuth(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		ownerID, claims, err := resolveOwner(c, cfg)
		if err != nil {
			log.Warn("Authentication failed",
				zap.Error(err),
				zap.String("path", path),
			)
			code, message := authErrorCode(err)
			abortWithError(c, code, message)
			return
		}

		if claims != nil {
			c.Set(ClaimsKey, claims)
		}
		c.Set(OwnerIDKey, ownerID)

		ctx, reqLogger := logger.WithOwnerID(c.Request.Context(), logger.FromContext(c.Request.Context()), ownerID.String())
		c.Request = c.Request.WithContext(ctx)
		logger.SetGinLogger(c, reqLogger)
		c.Next()
	}
}

var errMissingIdentity = errors.New("missing identity")

func resolveOwner(c *gin.Context, cfg AuthConfig) (uuid.UUID, *auth.Claims, error) {
	header := c.GetHeader(AuthHeaderKey)
	if header != "" {
		token, ok := strings.CutPrefix(header, BearerPrefix)
		if !ok || token == "" || cfg.Verifier == nil {
			return uuid.Nil, nil, auth.ErrInvalidToken
		}
		claims, err := cfg.Verifier.ValidateAccessToken(token)
		if err != nil {
			return uuid.Nil, nil, err
		}
		ownerID, err := claims.GetUserUUID()
		if err != nil {
			return uuid.Nil, nil, auth.ErrInvalidClaims
		}
		return ownerID, claims, nil
	}

	if cfg.AllowHeaderIdentity {
		if raw := c.GetHeader(OwnerHeader); raw != "" {
			ownerID, err := uuid.Parse(raw)
			if err != nil || ownerID == uuid.Nil {
				return uuid.Nil, nil, auth.ErrInvalidClaims
			}
			return ownerID, nil, nil
		}
	}
	return uuid.Nil, nil, errMissingIdentity
}

func authErrorCode(err error) (string, string) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrMissingUserID),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return dto.ErrCodeTokenInvalid, "Invalid token"
	default:
		return dto.ErrCodeUnauthorized, "Authentication required"
	}
}

// GetOwnerID returns the authenticated owner, or uuid.Nil
func GetOwnerID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(OwnerIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetClaims returns the verified token claims, or nil for header identities
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
