package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/i18n"
	"github.com/guttosm/fulfillment-service/internal/service"
)

// ClaimsKey is the context key for validated token claims.
const ClaimsKey ContextKey = "token_claims"

// JWTAuth returns a middleware that requires a bearer token carrying scope.
// A missing or invalid token yields 401; a valid token without the scope yields 403.
func JWTAuth(tokens service.TokenService, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		claims, err := tokens.ValidateToken(c.Request.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		if scope != "" && !claims.HasScope(scope) {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyForbidden, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewError(dto.ErrCodeForbidden, message).
					WithRequestID(GetRequestID(c)).
					WithDetail("required_scope", scope))
			return
		}

		c.Set(string(ClaimsKey), claims)
		SetActor(c, "token:"+claims.Subject)
		c.Next()
	}
}
