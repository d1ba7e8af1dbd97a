package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Middleware authenticates requests and stores token and identity on the
// request context. Requests without a valid token get 401.
func Middleware(decoder *Decoder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		claims, err := decoder.Decode(token)
		if err != nil {
			logger.Debug("Rejected bearer token", zap.Error(err), zap.String("path", c.Request.URL.Path))
			abortUnauthorized(c, ErrInvalidToken)
			return
		}

		ctx := WithToken(c.Request.Context(), token)
		ctx = WithIdentity(ctx, claims.Identity())
		c.Request = c.Request.WithContext(ctx)
		c.Set("subject", claims.Subject)
		c.Next()
	}
}

// RequireRole rejects authenticated users that do not hold role
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !HasRole(IdentityFromContext(c.Request.Context()), role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "insufficient role",
			})
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
