package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campushq/studentadmin/internal/app/auth"
	"github.com/campushq/studentadmin/internal/app/models/dto"
	"github.com/campushq/studentadmin/internal/pkg/identity"
)

// SubjectKey is the gin context key holding the verified subject id.
const SubjectKey = "subjectID"

// AuthMiddleware authenticates requests against the identity provider and
// authorizes them against the linked student record.
type AuthMiddleware struct {
	provider *identity.Provider
	authz    *auth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(provider *identity.Provider, authz *auth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{
		provider: provider,
		authz:    authz,
	}
}

// BearerAuth verifies the bearer token of every request before any store
// access. On success the verified subject id is stored in the context;
// on any verification failure the request is rejected as unauthenticated.
func (m *AuthMiddleware) BearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		token = strings.TrimSpace(token)
		if token == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Bearer token missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		subjectID, err := m.provider.Verify(c.Request.Context(), token)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed")
			errorDetail = errorDetail.WithDetails(err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(SubjectKey, subjectID)
		c.Next()
	}
}

// AdminRequired is the single admin guard applied to every mutating or
// sensitive route. It must run after BearerAuth. A subject without a
// linked student account is unauthenticated (401); a linked non-admin is
// forbidden (403).
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		subjectID, exists := SubjectFromContext(c)
		if !exists {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if err := m.authz.RequireAdmin(c.Request.Context(), subjectID); err != nil {
			AbortWithAPIError(c, err)
			return
		}

		c.Next()
	}
}

// SubjectFromContext returns the verified subject id set by BearerAuth.
func SubjectFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(SubjectKey)
	if !exists {
		return "", false
	}
	subjectID, ok := value.(string)
	return subjectID, ok && subjectID != ""
}
